package query

// WeightFunction contributes a constant factor to the score.
type WeightFunction struct {
	weight float64
}

func NewWeightFunction(weight float64) *WeightFunction {
	return &WeightFunction{weight: weight}
}

func (f *WeightFunction) isScoreFunction() {}

func (f *WeightFunction) Source() (interface{}, error) {
	weight, err := jsonValue(f.weight)
	if err != nil {
		return nil, err
	}

	return params{"weight": weight}, nil
}

// ScriptScoreFunction computes the score with a script.
type ScriptScoreFunction struct {
	script string

	lang   *string
	params map[string]interface{}
}

func NewScriptScoreFunction(script string) *ScriptScoreFunction {
	return &ScriptScoreFunction{script: script}
}

func (f *ScriptScoreFunction) Lang(lang string) *ScriptScoreFunction {
	f.lang = &lang
	return f
}

// Param adds one script parameter; insertion order doesn't matter on the
// wire.
func (f *ScriptScoreFunction) Param(name string, value interface{}) *ScriptScoreFunction {
	if f.params == nil {
		f.params = map[string]interface{}{}
	}
	f.params[name] = value

	return f
}

func (f *ScriptScoreFunction) isScoreFunction() {}

func (f *ScriptScoreFunction) Source() (interface{}, error) {
	body := params{}
	body.set("script", f.script)
	if f.lang != nil {
		body.set("lang", *f.lang)
	}
	if len(f.params) != 0 {
		scriptParams := params{}
		for name, value := range f.params {
			if err := scriptParams.setValue(name, value); err != nil {
				return nil, err
			}
		}
		body.set("params", scriptParams)
	}

	return params{"script_score": body}, nil
}

// RandomScoreFunction scores documents pseudo-randomly, reproducibly when
// seeded.
type RandomScoreFunction struct {
	seed interface{}
}

func NewRandomScoreFunction() *RandomScoreFunction {
	return &RandomScoreFunction{}
}

func (f *RandomScoreFunction) Seed(seed interface{}) *RandomScoreFunction {
	f.seed = seed
	return f
}

func (f *RandomScoreFunction) isScoreFunction() {}

func (f *RandomScoreFunction) Source() (interface{}, error) {
	body := params{}
	if f.seed != nil {
		if err := body.setValue("seed", f.seed); err != nil {
			return nil, err
		}
	}

	return params{"random_score": body}, nil
}

// FieldValueFactorFunction folds a numeric field's value into the score.
type FieldValueFactorFunction struct {
	field string

	factor   *float64
	modifier *string
	missing  *float64
}

func NewFieldValueFactorFunction(field string) *FieldValueFactorFunction {
	return &FieldValueFactorFunction{field: field}
}

func (f *FieldValueFactorFunction) Factor(factor float64) *FieldValueFactorFunction {
	f.factor = &factor
	return f
}

// Modifier applies a math function to the field value, e.g. "log1p" or
// "sqrt".
func (f *FieldValueFactorFunction) Modifier(modifier string) *FieldValueFactorFunction {
	f.modifier = &modifier
	return f
}

func (f *FieldValueFactorFunction) Missing(missing float64) *FieldValueFactorFunction {
	f.missing = &missing
	return f
}

func (f *FieldValueFactorFunction) isScoreFunction() {}

func (f *FieldValueFactorFunction) Source() (interface{}, error) {
	body := params{}
	body.set("field", f.field)
	if f.factor != nil {
		if err := body.setValue("factor", *f.factor); err != nil {
			return nil, err
		}
	}
	if f.modifier != nil {
		body.set("modifier", *f.modifier)
	}
	if f.missing != nil {
		if err := body.setValue("missing", *f.missing); err != nil {
			return nil, err
		}
	}

	return params{"field_value_factor": body}, nil
}

// DecayFunction scores documents by their distance from an origin. One
// declaration backs the gauss, exp and linear variants; only the envelope
// name differs.
type DecayFunction struct {
	name   string
	field  string
	origin interface{}
	scale  interface{}

	offset         interface{}
	decay          *float64
	multiValueMode *string
}

func NewGaussDecayFunction(field string, origin, scale interface{}) *DecayFunction {
	return &DecayFunction{name: "gauss", field: field, origin: origin, scale: scale}
}

func NewExpDecayFunction(field string, origin, scale interface{}) *DecayFunction {
	return &DecayFunction{name: "exp", field: field, origin: origin, scale: scale}
}

func NewLinearDecayFunction(field string, origin, scale interface{}) *DecayFunction {
	return &DecayFunction{name: "linear", field: field, origin: origin, scale: scale}
}

func (f *DecayFunction) Offset(offset interface{}) *DecayFunction {
	f.offset = offset
	return f
}

func (f *DecayFunction) Decay(decay float64) *DecayFunction {
	f.decay = &decay
	return f
}

func (f *DecayFunction) MultiValueMode(multiValueMode string) *DecayFunction {
	f.multiValueMode = &multiValueMode
	return f
}

func (f *DecayFunction) isScoreFunction() {}

func (f *DecayFunction) Source() (interface{}, error) {
	inner := params{}
	if err := inner.setValue("origin", f.origin); err != nil {
		return nil, err
	}
	if err := inner.setValue("scale", f.scale); err != nil {
		return nil, err
	}
	if f.offset != nil {
		if err := inner.setValue("offset", f.offset); err != nil {
			return nil, err
		}
	}
	if f.decay != nil {
		if err := inner.setValue("decay", *f.decay); err != nil {
			return nil, err
		}
	}

	body := params{f.field: inner}
	if f.multiValueMode != nil {
		body.set("multi_value_mode", *f.multiValueMode)
	}

	return params{f.name: body}, nil
}
