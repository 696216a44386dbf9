// Package render turns render requests into text.
//
// A request names a Handlebars template and a mode:
//   - template: the template is rendered against the request context and returned
//   - llm: the rendered template is sent as a prompt to the LLM and the completion is returned
//
// The context a template sees is built from the stored execution state and the inline data
// of the request. Inline keys take precedence, and the stored state stays reachable as
// {{state.<key>}}.
//
// Example template rendering:
//
//	req := &Request{
//	    Template: "{{#forEach (sortBy tickets \"priority\")}}{{@index}}. {{title}}\n{{/forEach}}",
//	    Data: map[string]interface{}{"tickets": tickets},
//	}
//	result, err := renderer.Render(ctx, req, nil)
//
// Example LLM rendering:
//
//	req := &Request{
//	    Mode:     ModeLLM,
//	    System:   "You are a release notes writer.",
//	    Template: "Summarize:\n{{#withFirst changes idx=10}}- {{title}}\n{{/withFirst}}",
//	}
//	result, err := renderer.Render(ctx, req, storedState)
package render
