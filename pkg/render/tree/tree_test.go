package tree

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/boxlayout/pkg/geom"
	"github.com/matzehuels/boxlayout/pkg/scene"
)

func testResult() *scene.Result {
	return &scene.Result{
		Width: 100, Height: 20,
		Boxes: []scene.BoxResult{
			{ID: scene.RootID, Label: "toolbar", Kind: "pack", Rect: geom.R(0, 0, 100, 20)},
			{ID: "open", Parent: scene.RootID, Depth: 1, Rect: geom.R(0, 0, 30, 20)},
			{ID: "save", Parent: scene.RootID, Depth: 1, Color: "#336699", Rect: geom.R(32, 0, 20, 20)},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testResult())

	for _, want := range []string{
		"digraph G {",
		`"root" [label="toolbar\npack\n(0,0 100x20)"]`,
		`"open" [label="open\n(0,0 30x20)", style="filled"]`,
		`fillcolor="#336699"`,
		`"root" -> "open";`,
		`"root" -> "save";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, "->"); n != 2 {
		t.Errorf("edge count = %d, want 2", n)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testResult()))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("svg header not normalized:\n%.300s", out)
	}
	if !strings.Contains(out, "toolbar") {
		t.Error("svg missing root label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got := string(normalizeViewBox(in)); got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}
