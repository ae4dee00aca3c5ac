package htmlnode

import (
	"errors"
	"testing"
)

func TestAttributes_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		attrs Attributes
		want  string
	}{
		{name: "nil", attrs: nil, want: ""},
		{name: "empty", attrs: Attributes{}, want: ""},
		{name: "single", attrs: Attributes{{"href", "https://boot.dev"}}, want: ` href="https://boot.dev"`},
		{name: "insertion order kept", attrs: Attributes{{"foo", "bar"}, {"baz", "qux"}}, want: ` foo="bar" baz="qux"`},
		{name: "no escaping", attrs: Attributes{{"title", `a<b`}}, want: ` title="a<b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.attrs.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAttributes_Get(t *testing.T) {
	t.Parallel()

	attrs := Attributes{{"src", "u"}, {"alt", "t"}}
	if v, ok := attrs.Get("alt"); !ok || v != "t" {
		t.Errorf("Get(alt) = %q, %v, want \"t\", true", v, ok)
	}
	if _, ok := attrs.Get("href"); ok {
		t.Error("Get(href) found a missing attribute")
	}
}

func TestLeaf_HTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		leaf *Leaf
		want string
	}{
		{name: "tagged", leaf: NewLeaf("tag", "value"), want: "<tag>value</tag>"},
		{name: "untagged renders raw value", leaf: NewText("hi"), want: "hi"},
		{name: "with attributes", leaf: NewLeaf("a", "click", Attr{"href", "url"}), want: `<a href="url">click</a>`},
		{name: "image attribute order", leaf: NewLeaf("img", "", Attr{"src", "u"}, Attr{"alt", "t"}), want: `<img src="u" alt="t"></img>`},
		{name: "empty value keeps tag", leaf: NewLeaf("b", ""), want: "<b></b>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.leaf.HTML()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("HTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLeaf_HTML_NoValue(t *testing.T) {
	t.Parallel()

	_, err := (&Leaf{tag: "p"}).HTML()
	if !errors.Is(err, ErrLeafNoValue) {
		t.Errorf("error = %v, want ErrLeafNoValue", err)
	}
}

func TestLeaf_Value(t *testing.T) {
	t.Parallel()

	if v, ok := NewLeaf("b", "x").Value(); !ok || v != "x" {
		t.Errorf("Value() = %q, %v, want \"x\", true", v, ok)
	}
	if _, ok := (&Leaf{}).Value(); ok {
		t.Error("zero Leaf reports a value")
	}
}

func TestParent_HTML(t *testing.T) {
	t.Parallel()

	t.Run("nested", func(t *testing.T) {
		t.Parallel()

		inner := NewParent("parent_tag", []Node{
			NewLeaf("parent_child_tag", "parent_child_value", Attr{"foo", "bar"}),
		})
		node := NewParent("tag", []Node{inner, NewLeaf("leaf_tag", "leaf_value")})

		got, err := node.HTML()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `<tag><parent_tag><parent_child_tag foo="bar">parent_child_value</parent_child_tag></parent_tag><leaf_tag>leaf_value</leaf_tag></tag>`
		if got != want {
			t.Errorf("HTML() = %q, want %q", got, want)
		}
	})

	t.Run("mixed inline children", func(t *testing.T) {
		t.Parallel()

		node := NewParent("p", []Node{
			NewLeaf("b", "Bold text"),
			NewText("Normal text"),
			NewLeaf("i", "italic text"),
			NewText("Normal text"),
		})

		got, err := node.HTML()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "<p><b>Bold text</b>Normal text<i>italic text</i>Normal text</p>"
		if got != want {
			t.Errorf("HTML() = %q, want %q", got, want)
		}
	})

	t.Run("attributes on parent", func(t *testing.T) {
		t.Parallel()

		node := NewParent("div", []Node{NewText("x")}, Attr{"class", "c"})
		got, err := node.HTML()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != `<div class="c">x</div>` {
			t.Errorf("HTML() = %q", got)
		}
	})

	t.Run("empty children renders empty element", func(t *testing.T) {
		t.Parallel()

		got, err := NewParent("div", []Node{}).HTML()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "<div></div>" {
			t.Errorf("HTML() = %q, want <div></div>", got)
		}
	})
}

func TestParent_HTML_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		node    *Parent
		wantErr error
	}{
		{name: "missing tag", node: NewParent("", []Node{NewText("x")}), wantErr: ErrParentNoTag},
		{name: "missing children", node: NewParent("p", nil), wantErr: ErrParentNoChildren},
		{name: "zero value", node: &Parent{}, wantErr: ErrParentNoTag},
		{name: "child error propagates", node: NewParent("p", []Node{&Leaf{tag: "b"}}), wantErr: ErrLeafNoValue},
		{name: "nested child error propagates", node: NewParent("div", []Node{NewParent("ul", nil)}), wantErr: ErrParentNoChildren},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.node.HTML()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNode_String(t *testing.T) {
	t.Parallel()

	leaf := NewLeaf("img", "", Attr{"src", "url"}, Attr{"alt", "text"})
	if got, want := leaf.String(), `Leaf("img", "", [{src url} {alt text}])`; got != want {
		t.Errorf("Leaf.String() = %q, want %q", got, want)
	}

	parent := NewParent("p", []Node{NewText("a")})
	if got, want := parent.String(), `Parent("p", [Leaf("", "a", [])], [])`; got != want {
		t.Errorf("Parent.String() = %q, want %q", got, want)
	}
}
