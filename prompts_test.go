package main

import (
	"strings"
	"testing"
)

func TestSystemPromptFor(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpPlan, PlanSystemPrompt},
		{OpCheck, BugAnalysisSystemPrompt},
		{OpPerf, PerformanceSystemPrompt},
		{OpDocs, DocsSystemPrompt},
		{OpTests, TestsSystemPrompt},
		{Operation("unknown"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			if got := SystemPromptFor(tt.op); got != tt.want {
				t.Errorf("SystemPromptFor(%q) returned the wrong template", tt.op)
			}
		})
	}
}

func TestPlanPromptNamesRequiredSections(t *testing.T) {
	for _, section := range RequiredPlanSections {
		if !strings.Contains(PlanSystemPrompt, section) {
			t.Errorf("plan template does not mention %q", section)
		}
	}
}

func TestStructuredPromptsNameTheirField(t *testing.T) {
	for _, op := range []Operation{OpCheck, OpPerf, OpDocs, OpTests} {
		t.Run(string(op), func(t *testing.T) {
			if !strings.Contains(SystemPromptFor(op), "`"+op.Field()+"`") {
				t.Errorf("template for %s does not name field %q", op, op.Field())
			}
		})
	}
}
