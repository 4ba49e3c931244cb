// Copyright 2021 The Rode Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package filtering translates CEL filter expressions into query DSL nodes,
// so callers can accept filter strings without exposing the grammar itself.
package filtering

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
	"github.com/google/cel-go/common/operators"
	"github.com/google/cel-go/common/overloads"
	"github.com/hashicorp/go-multierror"
	"github.com/rode/es-query/go/query"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

type Filterer interface {
	ParseExpression(filter string) (query.Query, error)
}

type filterer struct{}

func NewFilterer() Filterer {
	return &filterer{}
}

const nestedFilter = "nestedFilter"

var elasticsearchSpecialCharacterRegex = regexp.MustCompile(`([\-=&|!(){}\[\]^"~*?:\\/])`)

// ParseExpression parses the filter string and walks the expression tree,
// emitting one query node per operator.
func (f *filterer) ParseExpression(filter string) (query.Query, error) {
	env, err := cel.NewEnv(
		cel.ClearMacros(),
		cel.Declarations(decls.NewFunction(
			nestedFilter, decls.NewOverload(nestedFilter, []*expr.Type{decls.Any}, decls.Any))),
	)

	if err != nil {
		return nil, err
	}
	parsedExpr, issues := env.Parse(filter)
	if issues != nil && len(issues.Errors()) > 0 {
		resultErr := fmt.Errorf("error parsing filter")
		for _, e := range issues.Errors() {
			resultErr = multierror.Append(resultErr, fmt.Errorf("%s (%d:%d)", e.Message, e.Location.Line(), e.Location.Column()))
		}

		return nil, resultErr
	}

	maybeQuery, err := f.visit(parsedExpr.Expr(), "")
	if err != nil {
		return nil, err
	}

	parsedQuery, ok := maybeQuery.(query.Query)
	if !ok {
		return nil, fmt.Errorf("filter did not result in a valid query expression")
	}

	return parsedQuery, nil
}

func (f *filterer) visit(expression *expr.Expr, depth string) (interface{}, error) {
	switch expression.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return f.visitIdent(expression, depth)
	case *expr.Expr_ConstExpr:
		return f.visitConst(expression, depth)
	case *expr.Expr_SelectExpr:
		return f.visitSelect(expression, depth)
	case *expr.Expr_CallExpr:
		return f.visitCall(expression, depth)
	default:
		return nil, fmt.Errorf("unrecognized expression: %v", expression)
	}
}

func (f *filterer) visitIdent(expression *expr.Expr, depth string) (string, error) {
	ident := addPath(depth, expression.GetIdentExpr().Name)

	return ident, nil
}

func (f *filterer) visitConst(expression *expr.Expr, _ string) (interface{}, error) {
	constantExpr := expression.GetConstExpr()

	var value interface{}

	switch constantExpr.ConstantKind.(type) {
	case *expr.Constant_BoolValue:
		value = constantExpr.GetBoolValue()
	case *expr.Constant_StringValue:
		value = constantExpr.GetStringValue()
	case *expr.Constant_Int64Value:
		value = constantExpr.GetInt64Value()
	case *expr.Constant_Uint64Value:
		value = constantExpr.GetUint64Value()
	case *expr.Constant_DoubleValue:
		value = constantExpr.GetDoubleValue()
	default:
		return nil, fmt.Errorf("unrecognized constant kind %T", constantExpr.ConstantKind)
	}

	return value, nil
}

func (f *filterer) visitSelect(expression *expr.Expr, depth string) (string, error) {
	selectExp := expression.GetSelectExpr()

	value, err := f.visit(selectExp.Operand, depth)
	if err != nil {
		return "", err
	}
	field := addPath(depth, fmt.Sprintf("%s.%s", value, selectExp.Field))

	return field, nil
}

func (f *filterer) visitCall(expression *expr.Expr, depth string) (interface{}, error) {
	function := expression.GetCallExpr().Function
	switch function {
	case operators.LogicalAnd,
		operators.LogicalOr,
		operators.Equals,
		operators.Greater,
		operators.GreaterEquals,
		operators.Less,
		operators.LessEquals,
		operators.NotEquals:
		return f.visitBinaryOperator(expression, depth)
	case overloads.Contains,
		overloads.StartsWith:
		return f.visitCallFunction(expression, depth)
	case nestedFilter:
		return f.visitNestedFilterCall(expression, depth)
	default:
		return nil, fmt.Errorf("unrecognized function: %s", function)
	}
}

func (f *filterer) visitBinaryOperator(expression *expr.Expr, depth string) (interface{}, error) {
	args := expression.GetCallExpr().Args

	if len(args) != 2 {
		return nil, fmt.Errorf("unexpected number of arguments to binary operator")
	}

	lhs, err := f.visit(args[0], depth)
	if err != nil {
		return nil, err
	}

	rhs, err := f.visit(args[1], depth)
	if err != nil {
		return nil, err
	}

	switch expression.GetCallExpr().Function {
	case operators.LogicalAnd:
		left, right, err := assertQueries(lhs, rhs)
		if err != nil {
			return nil, err
		}

		return query.NewBoolQuery().Must(left, right), nil
	case operators.LogicalOr:
		left, right, err := assertQueries(lhs, rhs)
		if err != nil {
			return nil, err
		}

		return query.NewBoolQuery().Should(left, right), nil
	case operators.Equals:
		field, value, err := assertComparison(lhs, rhs)
		if err != nil {
			return nil, err
		}

		return query.NewTermQuery(field, value), nil
	case operators.NotEquals:
		field, value, err := assertComparison(lhs, rhs)
		if err != nil {
			return nil, err
		}

		return query.NewBoolQuery().MustNot(query.NewTermQuery(field, value)), nil
	case operators.Greater:
		field, value, err := assertComparison(lhs, rhs)
		if err != nil {
			return nil, err
		}

		return query.NewRangeQuery(field).Gt(value), nil
	case operators.GreaterEquals:
		field, value, err := assertComparison(lhs, rhs)
		if err != nil {
			return nil, err
		}

		return query.NewRangeQuery(field).Gte(value), nil
	case operators.Less:
		field, value, err := assertComparison(lhs, rhs)
		if err != nil {
			return nil, err
		}

		return query.NewRangeQuery(field).Lt(value), nil
	case operators.LessEquals:
		field, value, err := assertComparison(lhs, rhs)
		if err != nil {
			return nil, err
		}

		return query.NewRangeQuery(field).Lte(value), nil
	}

	return nil, fmt.Errorf("unrecognized function %s", expression.GetCallExpr().Function)
}

func (f *filterer) visitCallFunction(expression *expr.Expr, depth string) (interface{}, error) {
	callExpr := expression.GetCallExpr()

	parsedTarget, err := f.visit(callExpr.Target, depth)
	if err != nil {
		return nil, err
	}

	if len(callExpr.Args) != 1 {
		return nil, fmt.Errorf("invalid number of arguments")
	}

	parsedArg, err := f.visit(callExpr.Args[0], depth)
	if err != nil {
		return nil, err
	}

	target, err := assertString(parsedTarget)
	if err != nil {
		return nil, err
	}

	arg, err := assertString(parsedArg)
	if err != nil {
		return nil, err
	}

	switch callExpr.Function {
	case overloads.StartsWith:
		return query.NewPrefixQuery(target, arg), nil
	case overloads.Contains:
		wildcard := fmt.Sprintf("*%s*", elasticsearchSpecialCharacterRegex.ReplaceAllString(arg, `\$1`))

		return query.NewQueryStringQuery(wildcard).DefaultField(target), nil
	}

	return nil, fmt.Errorf("unrecognized function: %s", callExpr.Function)
}

func (f *filterer) visitNestedFilterCall(expression *expr.Expr, depth string) (interface{}, error) {
	callExpr := expression.GetCallExpr()

	parsedTarget, err := f.visit(callExpr.Target, depth)
	if err != nil {
		return nil, err
	}

	if len(callExpr.Args) != 1 {
		return nil, fmt.Errorf("invalid number of arguments")
	}

	target, err := assertString(parsedTarget)
	if err != nil {
		return nil, err
	}

	newDepth := target
	if depth != "" {
		newDepth = fmt.Sprintf("%s.%s", depth, newDepth)
	}

	maybeNestedQuery, err := f.visit(callExpr.Args[0], newDepth)
	if err != nil {
		return nil, err
	}
	nestedQuery, ok := maybeNestedQuery.(query.Query)
	if !ok {
		return nil, fmt.Errorf("nested expression was not a valid query")
	}

	return query.NewNestedQuery(target, nestedQuery), nil
}

// assertComparison checks the two sides of a comparison operator: the lhs
// must name a field and the rhs must be a scalar literal, not a nested
// expression.
func assertComparison(lhs, rhs interface{}) (string, interface{}, error) {
	field, err := assertString(lhs)
	if err != nil {
		return "", nil, err
	}

	switch rhs.(type) {
	case bool, string, int64, uint64, float64:
		return field, rhs, nil
	}

	return "", nil, fmt.Errorf("expected %[1]v to be a scalar value but was %[1]T", rhs)
}

func assertString(value interface{}) (string, error) {
	stringValue, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("expected %[1]v to have type string but was %[1]T", value)
	}

	return stringValue, nil
}

func assertQueries(lhs, rhs interface{}) (query.Query, query.Query, error) {
	left, ok := lhs.(query.Query)
	if !ok {
		return nil, nil, fmt.Errorf("expected %v to be a query expression", lhs)
	}

	right, ok := rhs.(query.Query)
	if !ok {
		return nil, nil, fmt.Errorf("expected %v to be a query expression", rhs)
	}

	return left, right, nil
}

func addPath(path, field string) string {
	if path == "" || strings.HasPrefix(field, path) {
		return field
	}

	return fmt.Sprintf("%s.%s", path, field)
}
