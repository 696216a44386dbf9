package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aescanero/dago-node-renderer/internal/helpers"
)

func letters() []interface{} {
	return []interface{}{"a", "b", "c"}
}

func people() []interface{} {
	return []interface{}{
		map[string]interface{}{"name": "Cy", "age": 35},
		map[string]interface{}{"name": "Al", "age": 29},
		map[string]interface{}{"name": "Bea", "age": 41},
	}
}

func TestRenderHelpers(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		data map[string]interface{}
		want string
	}{
		{
			name: "first and last",
			tpl:  "{{first items}}{{last items}}",
			data: map[string]interface{}{"items": letters()},
			want: "ac",
		},
		{
			name: "first n as subexpression",
			tpl:  "{{#each (first items n=2)}}{{this}}{{/each}}",
			data: map[string]interface{}{"items": letters()},
			want: "ab",
		},
		{
			name: "after and before",
			tpl:  "{{#each (after items 1)}}{{this}}{{/each}}|{{#each (before items 1)}}{{this}}{{/each}}",
			data: map[string]interface{}{"items": letters()},
			want: "bc|ab",
		},
		{
			name: "withAfter",
			tpl:  "{{#withAfter items 1}}<{{this}}>{{/withAfter}}",
			data: map[string]interface{}{"items": letters()},
			want: "<b><c>",
		},
		{
			name: "withFirst default and idx",
			tpl:  "{{#withFirst items}}{{this}}{{/withFirst}}|{{#withFirst items idx=2}}{{this}}{{/withFirst}}",
			data: map[string]interface{}{"items": letters()},
			want: "a|ab",
		},
		{
			name: "withLast on empty renders nothing",
			tpl:  "[{{#withLast items}}{{this}}{{/withLast}}]",
			data: map[string]interface{}{"items": []interface{}{}},
			want: "[]",
		},
		{
			name: "forEach frame and item metadata",
			tpl:  "{{#forEach people}}{{@index}}:{{name}}:{{index}}/{{total}}{{#unless @last}},{{/unless}}{{/forEach}}",
			data: map[string]interface{}{"people": people()},
			want: "0:Cy:1/3,1:Al:2/3,2:Bea:3/3",
		},
		{
			name: "eachIndex",
			tpl:  "{{#eachIndex items}}{{index}}{{item}} {{/eachIndex}}",
			data: map[string]interface{}{"items": letters()},
			want: "0a 1b 2c ",
		},
		{
			name: "iterate mapping in key order",
			tpl:  "{{#iterate obj}}{{@key}}={{this}};{{/iterate}}",
			data: map[string]interface{}{"obj": map[string]interface{}{"b": 2, "a": 1}},
			want: "a=1;b=2;",
		},
		{
			name: "iterate scalar renders inverse",
			tpl:  "{{#iterate value}}x{{else}}none{{/iterate}}",
			data: map[string]interface{}{"value": 7},
			want: "none",
		},
		{
			name: "filter by property",
			tpl:  `{{#filter people "Al" property="name"}}{{age}}{{else}}none{{/filter}}`,
			data: map[string]interface{}{"people": people()},
			want: "29",
		},
		{
			name: "filter without match",
			tpl:  `{{#filter items "z"}}{{this}}{{else}}none{{/filter}}`,
			data: map[string]interface{}{"items": letters()},
			want: "none",
		},
		{
			name: "inArray",
			tpl:  `{{#inArray items "b"}}yes{{else}}no{{/inArray}}{{#inArray items "z"}}yes{{else}}no{{/inArray}}`,
			data: map[string]interface{}{"items": letters()},
			want: "yesno",
		},
		{
			name: "some with named predicate",
			tpl:  `{{#some items "isNumber"}}yes{{else}}no{{/some}}`,
			data: map[string]interface{}{"items": letters()},
			want: "no",
		},
		{
			name: "some with property path",
			tpl:  `{{#some users "admin"}}yes{{else}}no{{/some}}`,
			data: map[string]interface{}{"users": []interface{}{
				map[string]interface{}{"admin": false},
				map[string]interface{}{"admin": true},
			}},
			want: "yes",
		},
		{
			name: "some with CEL expression",
			tpl:  `{{#some nums "item > 2"}}big{{else}}small{{/some}}`,
			data: map[string]interface{}{"nums": []interface{}{1, 2, 3}},
			want: "big",
		},
		{
			name: "map with property path",
			tpl:  `{{#each (map people "name")}}{{this}} {{/each}}`,
			data: map[string]interface{}{"people": people()},
			want: "Cy Al Bea ",
		},
		{
			name: "map with CEL expression",
			tpl:  `{{#each (map nums "item * 10")}}{{this}} {{/each}}`,
			data: map[string]interface{}{"nums": []interface{}{1, 2}},
			want: "10 20 ",
		},
		{
			name: "sort and reverse",
			tpl:  `{{#each (sort items)}}{{this}}{{/each}}|{{#each (sort items reverse=true)}}{{this}}{{/each}}`,
			data: map[string]interface{}{"items": []interface{}{"b", "c", "a"}},
			want: "abc|cba",
		},
		{
			name: "sortBy property",
			tpl:  `{{#each (sortBy people "name")}}{{name}} {{/each}}`,
			data: map[string]interface{}{"people": people()},
			want: "Al Bea Cy ",
		},
		{
			name: "sortBy list literal",
			tpl:  `{{#each (sortBy people '["age"]')}}{{age}} {{/each}}`,
			data: map[string]interface{}{"people": people()},
			want: "29 35 41 ",
		},
		{
			name: "withSort by property reversed",
			tpl:  `{{#withSort people prop="age" reverse=true}}{{name}} {{/withSort}}`,
			data: map[string]interface{}{"people": people()},
			want: "Bea Cy Al ",
		},
		{
			name: "length of sequence and literal",
			tpl:  `{{length items}} {{length '["a","b","c"]'}} {{length obj}}`,
			data: map[string]interface{}{"items": letters(), "obj": map[string]interface{}{"k": 1}},
			want: "3 3 1",
		},
		{
			name: "isEmpty",
			tpl:  `{{#isEmpty empty}}empty{{else}}full{{/isEmpty}} {{#isEmpty items}}empty{{else}}full{{/isEmpty}}`,
			data: map[string]interface{}{"empty": []interface{}{}, "items": letters()},
			want: "empty full",
		},
		{
			name: "lengthEqual",
			tpl:  `{{#lengthEqual items 3}}three{{else}}other{{/lengthEqual}} {{#lengthEqual items 10}}ten{{else}}other{{/lengthEqual}}`,
			data: map[string]interface{}{"items": letters()},
			want: "three other",
		},
		{
			name: "lengthEqual on mapping renders inverse",
			tpl:  `{{#lengthEqual obj 0}}Y{{else}}N{{/lengthEqual}}`,
			data: map[string]interface{}{"obj": map[string]interface{}{"a": 1}},
			want: "N",
		},
		{
			name: "isArray and arrayify",
			tpl:  `{{#if (isArray items)}}list{{/if}} {{#each (arrayify one)}}[{{this}}]{{/each}}`,
			data: map[string]interface{}{"items": letters(), "one": "x"},
			want: "list [x]",
		},
		{
			name: "incrementVar",
			tpl:  `{{incrementVar "a"}}{{incrementVar "a"}}{{incrementVar "b"}}{{incrementVar "a"}}`,
			want: "0102",
		},
		{
			name: "getURLQueryParam",
			tpl:  `{{getURLQueryParam "https://example.com/search?q=go&page=2" "q"}}`,
			want: "go",
		},
		{
			name: "JSONparseSafe valid",
			tpl:  `{{#JSONparseSafe raw}}{{name}}{{else}}bad{{/JSONparseSafe}}`,
			data: map[string]interface{}{"raw": `{"name":"x"}`},
			want: "x",
		},
		{
			name: "JSONparseSafe invalid",
			tpl:  `{{#JSONparseSafe raw}}{{name}}{{else}}bad{{/JSONparseSafe}}`,
			data: map[string]interface{}{"raw": "nope"},
			want: "bad",
		},
		{
			name: "truncate",
			tpl:  `{{truncate "hello" 2}}`,
			want: "he",
		},
		{
			name: "text helpers",
			tpl:  `{{uppercase "go"}} {{default missing "N/A"}} {{join items ", "}}{{#if (eq n 1)}} one{{/if}}{{#if (gt n 0)}} positive{{/if}}`,
			data: map[string]interface{}{"items": letters(), "n": 1},
			want: "GO N/A a, b, c one positive",
		},
	}

	engine := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Render(tt.tpl, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name    string
		tpl     string
		data    map[string]interface{}
		wantErr string
	}{
		{
			name:    "lengthEqual on missing sequence",
			tpl:     `{{#lengthEqual missing 3}}x{{/lengthEqual}}`,
			wantErr: helpers.ErrNilSequence.Error(),
		},
		{
			name:    "withBefore on mapping",
			tpl:     `{{#withBefore obj 1}}x{{/withBefore}}`,
			data:    map[string]interface{}{"obj": map[string]interface{}{"a": 1}},
			wantErr: helpers.ErrNotSequence.Error(),
		},
		{
			name:    "invalid URL",
			tpl:     `{{getURLQueryParam "not a url" "q"}}`,
			wantErr: "getURLQueryParam: invalid URL",
		},
		{
			name:    "invalid CEL predicate",
			tpl:     `{{#some items "item >"}}x{{/some}}`,
			data:    map[string]interface{}{"items": letters()},
			wantErr: "invalid predicate",
		},
		{
			name:    "parse error",
			tpl:     `{{#forEach items}}`,
			wantErr: "failed to compile template",
		},
	}

	engine := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Render(tt.tpl, tt.data)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestIncrementVarStoragePerRender(t *testing.T) {
	engine := NewEngine(WithMaxCounters(2))
	tpl := `{{incrementVar "a"}}{{incrementVar "a"}}`

	for i := 0; i < 2; i++ {
		got, err := engine.Render(tpl, nil)
		require.NoError(t, err)
		assert.Equal(t, "01", got)
	}

	_, err := engine.Render(`{{incrementVar "a"}}{{incrementVar "b"}}{{incrementVar "c"}}`, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "may not exceed 2")
}

func TestRenderSortsInPlace(t *testing.T) {
	items := []interface{}{"b", "c", "a"}

	_, err := NewEngine().Render(`{{sort items}}`, map[string]interface{}{"items": items})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b", "c"}, items)
}

func TestWithoutEvaluatorUsesPropertyPaths(t *testing.T) {
	engine := NewEngine(WithEvaluator(nil))

	got, err := engine.Render(`{{#some items "item > 2"}}yes{{else}}no{{/some}}`, map[string]interface{}{
		"items": []interface{}{1, 2, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "no", got)
}

func TestTemplateCache(t *testing.T) {
	engine := NewEngine()

	require.NoError(t, engine.ValidateTemplate("{{first items}}"))
	require.Error(t, engine.ValidateTemplate("{{#first items}}"))

	_, err := engine.Render("{{first items}}", map[string]interface{}{"items": letters()})
	require.NoError(t, err)
	assert.Len(t, engine.cache, 1)

	engine.ClearCache()
	assert.Empty(t, engine.cache)
}
