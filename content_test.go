package tagcmp

import "testing"

func TestContentAppend(t *testing.T) {
	var c Content
	if c.IsModified() || !c.IsEmpty() {
		t.Fatal("zero Content should be unmodified and empty")
	}

	c.Append(`<b>"x"</b>`)
	if got, want := c.String(), "&lt;b&gt;&#34;x&#34;&lt;/b&gt;"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !c.IsModified() {
		t.Error("Append should mark content modified")
	}

	c.AppendHTML("<br/>")
	if got, want := c.String(), "&lt;b&gt;&#34;x&#34;&lt;/b&gt;<br/>"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestContentSet(t *testing.T) {
	var c Content
	c.AppendHTML("old")

	c.SetHTML("<i>new</i>")
	if got := c.String(); got != "<i>new</i>" {
		t.Errorf("SetHTML: String() = %q, want %q", got, "<i>new</i>")
	}

	c.SetContent("a & b")
	if got := c.String(); got != "a &amp; b" {
		t.Errorf("SetContent: String() = %q, want %q", got, "a &amp; b")
	}
}

func TestContentClear(t *testing.T) {
	var c Content
	c.Clear()

	if !c.IsModified() {
		t.Error("Clear should mark content modified")
	}
	if !c.IsEmpty() {
		t.Errorf("Clear: String() = %q, want empty", c.String())
	}
}
