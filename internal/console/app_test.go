package console

import (
	"strings"
	"testing"

	"github.com/hammamikhairi/mealbot/internal/conversation"
	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/engine"
)

func TestResolve(t *testing.T) {
	last := conversation.Reply{
		Text: "pick",
		Options: [][]conversation.Option{
			{conversation.Button("Lunch", domain.CmdMeal{Meal: domain.MealLunch}), conversation.Button("Dinner", domain.CmdMeal{Meal: domain.MealDinner})},
			{conversation.Button("Snacks", domain.CmdMeal{Meal: domain.MealSnacks})},
		},
	}

	tests := []struct {
		line     string
		wantKind engine.EventKind
		wantData string
		wantQuit bool
	}{
		{"1", engine.EventCommand, "meal:lunch", false},
		{" 3 ", engine.EventCommand, "meal:snacks", false},
		{"9", engine.EventText, "", false},
		{"diet:eggitarian", engine.EventCommand, "diet:eggitarian", false},
		{"paneer tikka", engine.EventText, "", false},
		{"/start", engine.EventReset, "", false},
		{"QUIT", 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ev, quit := Resolve("u1", tt.line, last)
			if quit != tt.wantQuit {
				t.Fatalf("quit = %v, want %v", quit, tt.wantQuit)
			}
			if quit {
				return
			}
			if ev.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", ev.Kind, tt.wantKind)
			}
			if tt.wantData != "" && ev.Text != tt.wantData {
				t.Fatalf("data = %q, want %q", ev.Text, tt.wantData)
			}
			if ev.UserID != "u1" {
				t.Fatalf("user = %q", ev.UserID)
			}
		})
	}
}

func TestPlain(t *testing.T) {
	got := Plain(`1. *Aloo\_Gobi* (220 cal)`)
	if got != "1. Aloo_Gobi (220 cal)" {
		t.Fatalf("Plain = %q", got)
	}
}

func TestFormatReplyNumbersButtons(t *testing.T) {
	r := conversation.Reply{
		Text: "Which meal?",
		Options: [][]conversation.Option{
			{{Label: "Lunch", Data: "meal:lunch"}, {Label: "Dinner", Data: "meal:dinner"}},
			{{Label: "Snacks", Data: "meal:snacks"}},
		},
	}
	out := FormatReply(r)
	for _, want := range []string{"Which meal?", "[1]", "Lunch", "[2]", "Dinner", "[3]", "Snacks"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
	if lines := strings.Split(out, "\n"); len(lines) != 3 {
		t.Fatalf("expected text line plus two rows, got %d lines", len(lines))
	}
}

func TestRenderBannerCentres(t *testing.T) {
	narrow := RenderBanner(10)
	wide := RenderBanner(200)
	if !strings.Contains(wide, "|") || len(wide) <= len(narrow) {
		t.Fatalf("wide banner should be padded: narrow=%d wide=%d", len(narrow), len(wide))
	}
}
