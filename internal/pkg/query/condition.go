package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

type compareCondition struct {
	field string
	op    string
	value interface{}
}

func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, paramName), map[string]interface{}{
		paramName: c.value,
	}
}

// Eq generates "field = @pN".
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// Lt generates "field < @pN".
func Lt(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<", value: value}
}

// Gte generates "field >= @pN".
func Gte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: ">=", value: value}
}

// In matches field against every element of values with a single array
// parameter: In("price_id", ids) generates "price_id IN UNNEST(@p0)".
func In(field string, values []string) Condition {
	return &inCondition{field: field, values: values}
}

type inCondition struct {
	field  string
	values []string
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	values := c.values
	if values == nil {
		values = []string{}
	}
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName), map[string]interface{}{
		paramName: values,
	}
}

// IsNull generates "field IS NULL".
func IsNull(field string) Condition {
	return &nullCondition{field: field, op: "IS NULL"}
}

// IsNotNull generates "field IS NOT NULL".
func IsNotNull(field string) Condition {
	return &nullCondition{field: field, op: "IS NOT NULL"}
}

type nullCondition struct {
	field string
	op    string
}

func (c *nullCondition) SQL(int) (string, map[string]interface{}) {
	return c.field + " " + c.op, map[string]interface{}{}
}
