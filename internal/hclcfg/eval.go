package hclcfg

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// newEvalContext builds the evaluation context session expressions see.
// The process environment is exposed as the env object so session files
// can read ports or credentials without hardcoding them.
func newEvalContext() *hcl.EvalContext {
	environ := os.Environ()
	vars := make(map[string]cty.Value, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
