package components

import "testing"

func TestHTMLToText_Paragraphs(t *testing.T) {
	in := "<h1>Intro</h1><p>First paragraph.</p><p>Second   paragraph.</p>"
	want := "Intro\n\nFirst paragraph.\n\nSecond paragraph."
	if got := HTMLToText(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHTMLToText_ListsAndEntities(t *testing.T) {
	in := "<ul><li>alpha &amp; beta</li><li>&quot;gamma&quot;</li></ul>"
	want := "alpha & beta\n\n\"gamma\""
	if got := HTMLToText(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHTMLToText_InlineTagsCollapse(t *testing.T) {
	in := "Use <b>bold</b> and <em>emphasis</em> inline."
	want := "Use bold and emphasis inline."
	if got := HTMLToText(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHTMLToText_Plain(t *testing.T) {
	if got := HTMLToText("already plain"); got != "already plain" {
		t.Fatalf("got %q", got)
	}
}
