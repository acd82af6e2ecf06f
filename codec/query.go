package codec

import (
	"github.com/jmespath/go-jmespath"

	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

// Query evaluates a JMESPath expression against v. An empty expression
// returns v unchanged. Objects in the result have sorted keys.
func Query(v value.Value, expr string) (value.Value, error) {
	if expr == "" {
		return v, nil
	}
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, errors.QueryFailed(expr, err)
	}
	data, err := toPlain(v)
	if err != nil {
		return nil, err
	}
	result, err := compiled.Search(data)
	if err != nil {
		return nil, errors.QueryFailed(expr, err)
	}
	out, err := FromNative(result)
	if err != nil {
		return nil, errors.QueryFailed(expr, err)
	}
	return out, nil
}
