package rewrite

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Rewrite(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        string
		wantChanged bool
		wantMatches []RuleMatch
	}{
		{
			name:        "no_triggers_is_noop",
			content:     "const x = 1;\nexport function helper() {\n    return x;\n}\n",
			want:        "const x = 1;\nexport function helper() {\n    return x;\n}\n",
			wantChanged: false,
		},
		{
			name:        "params_cast",
			content:     "const id = request.params.id;",
			want:        "const id = (request.params as { id: string }).id;",
			wantChanged: true,
			wantMatches: []RuleMatch{{Rule: "params-cast", Count: 1}},
		},
		{
			name:        "params_cast_multiple_properties",
			content:     "const a = request.params.userId;\nconst b = request.params.postId;\n",
			want:        "const a = (request.params as { userId: string }).userId;\nconst b = (request.params as { postId: string }).postId;\n",
			wantChanged: true,
			wantMatches: []RuleMatch{{Rule: "params-cast", Count: 2}},
		},
		{
			name: "query_cast_injects_interface_before_handler",
			content: "import { Request } from 'express';\n\n" +
				"export async function listUsers(request: Request) {\n" +
				"    const page = request.query.page;\n" +
				"    const limit = request.query.limit;\n" +
				"}\n",
			want: "import { Request } from 'express';\n\n" +
				"\ninterface QueryParams {\n    [key: string]: string | undefined;\n}\n\n" +
				"export async function listUsers(request: Request) {\n" +
				"    const page = (request.query as QueryParams).page;\n" +
				"    const limit = (request.query as QueryParams).limit;\n" +
				"}\n",
			wantChanged: true,
			wantMatches: []RuleMatch{{Rule: "query-cast", Count: 2}},
		},
		{
			name:        "query_cast_without_handler_anchor_skips_injection",
			content:     "const page = request.query.page;",
			want:        "const page = (request.query as QueryParams).page;",
			wantChanged: true,
			wantMatches: []RuleMatch{{Rule: "query-cast", Count: 1}},
		},
		{
			name:        "body_cast",
			content:     "const name = request.body.name;",
			want:        "const name = (request.body as Record<string, unknown>).name;",
			wantChanged: true,
			wantMatches: []RuleMatch{{Rule: "body-cast", Count: 1}},
		},
		{
			name: "caught_error_cast_only_inside_catch",
			content: "try {\n" +
				"    await save();\n" +
				"} catch (error) {\n" +
				"    console.error(error.message);\n" +
				"}\n\n" +
				"const hint = 'error.message';\n",
			want: "try {\n" +
				"    await save();\n" +
				"} catch (error) {\n" +
				"    console.error((error as Error).message);\n" +
				"}\n\n" +
				"const hint = 'error.message';\n",
			wantChanged: true,
			wantMatches: []RuleMatch{{Rule: "caught-error-cast", Count: 1}},
		},
		{
			name:        "error_message_outside_catch_untouched",
			content:     "const hint = 'error.message outside any catch';\n",
			want:        "const hint = 'error.message outside any catch';\n",
			wantChanged: false,
		},
		{
			name: "multiple_rules_in_one_file",
			content: "export async function getUser(request: Request) {\n" +
				"    const id = request.params.id;\n" +
				"    const name = request.body.name;\n" +
				"    try {\n" +
				"        await load(id);\n" +
				"    } catch (error) {\n" +
				"        log(error.message);\n" +
				"    }\n" +
				"}\n",
			want: "export async function getUser(request: Request) {\n" +
				"    const id = (request.params as { id: string }).id;\n" +
				"    const name = (request.body as Record<string, unknown>).name;\n" +
				"    try {\n" +
				"        await load(id);\n" +
				"    } catch (error) {\n" +
				"        log((error as Error).message);\n" +
				"    }\n" +
				"}\n",
			wantChanged: true,
			wantMatches: []RuleMatch{
				{Rule: "params-cast", Count: 1},
				{Rule: "body-cast", Count: 1},
				{Rule: "caught-error-cast", Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine()
			result, err := engine.Rewrite(context.Background(), strings.NewReader(tt.content))

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.FixedContent))
			assert.Equal(t, tt.wantChanged, result.Changed)
			assert.Equal(t, tt.wantMatches, result.Matches)
		})
	}
}

// A second pass over the engine's own output must be a no-op: the cast
// expressions no longer contain the bare access patterns, and the
// interface marker guards the injection.
func TestEngine_RewriteIsIdempotent(t *testing.T) {
	inputs := []struct {
		name    string
		content string
	}{
		{
			name:    "params",
			content: "const id = request.params.id;",
		},
		{
			name: "query_with_injection",
			content: "export async function listUsers(request: Request) {\n" +
				"    const page = request.query.page;\n" +
				"}\n",
		},
		{
			name:    "body",
			content: "const name = request.body.name;",
		},
		{
			name: "caught_error",
			content: "try {\n" +
				"    await save();\n" +
				"} catch (error) {\n" +
				"    console.error(error.message);\n" +
				"}\n",
		},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine()

			first, err := engine.Rewrite(context.Background(), strings.NewReader(tt.content))
			require.NoError(t, err)
			require.True(t, first.Changed, "first pass should change the content")

			second, err := engine.Rewrite(context.Background(), strings.NewReader(string(first.FixedContent)))
			require.NoError(t, err)
			assert.False(t, second.Changed, "second pass should be a no-op")
			assert.Equal(t, string(first.FixedContent), string(second.FixedContent))
		})
	}
}

func TestEngine_RewriteInjectsInterfaceOnce(t *testing.T) {
	content := "export async function listUsers(request: Request) {\n" +
		"    const page = request.query.page;\n" +
		"}\n"

	engine := NewEngine()
	first, err := engine.Rewrite(context.Background(), strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(first.FixedContent), "interface QueryParams"))

	second, err := engine.Rewrite(context.Background(), strings.NewReader(string(first.FixedContent)))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(second.FixedContent), "interface QueryParams"))
}

func TestEngine_ValidateRules(t *testing.T) {
	tests := []struct {
		name      string
		rules     []Rule
		wantError string
	}{
		{
			name:  "default_rules_are_valid",
			rules: DefaultRules(),
		},
		{
			name: "missing_name",
			rules: []Rule{
				{Pattern: DefaultRules()[0].Pattern, Template: "x"},
			},
			wantError: "name is required",
		},
		{
			name: "missing_pattern",
			rules: []Rule{
				{Name: "broken", Template: "x"},
			},
			wantError: "pattern is required",
		},
		{
			name: "missing_replacement",
			rules: []Rule{
				{Name: "broken", Pattern: DefaultRules()[0].Pattern},
			},
			wantError: "template or replace func is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngineWithRules(tt.rules)
			err := engine.ValidateRules()

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}
