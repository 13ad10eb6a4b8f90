// Package functions declares the tools the model may call. Every tool
// returns a textual result, even on failure: remote-service errors are
// folded into the result text so the model can read them and react,
// never raised to the turn controller.
package functions

var textResultSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"result": map[string]any{
			"type":        "string",
			"description": "Human-readable result text, or an error description starting with 'Error'",
		},
	},
}

func textResult(text string) map[string]any {
	return map[string]any{"result": text}
}

func stringArg(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return value
}

// stringSliceArg coerces a JSON array argument into []string, skipping
// non-string elements.
func stringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}

	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
