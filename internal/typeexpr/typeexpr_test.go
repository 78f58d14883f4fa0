package typeexpr

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Node
	}{
		{
			name: "bare name",
			src:  "int",
			want: Name{Ident: "int"},
		},
		{
			name: "dotted name",
			src:  "collections.abc.Sequence",
			want: Attr{X: Attr{X: Name{Ident: "collections"}, Ident: "abc"}, Ident: "Sequence"},
		},
		{
			name: "subscription",
			src:  "list[int]",
			want: Index{X: Name{Ident: "list"}, Args: []Node{Name{Ident: "int"}}},
		},
		{
			name: "nested subscription",
			src:  "dict[str, list[int]]",
			want: Index{
				X: Name{Ident: "dict"},
				Args: []Node{
					Name{Ident: "str"},
					Index{X: Name{Ident: "list"}, Args: []Node{Name{Ident: "int"}}},
				},
			},
		},
		{
			name: "union operator",
			src:  "int | None",
			want: BinOr{X: Name{Ident: "int"}, Y: None{}},
		},
		{
			name: "chained union",
			src:  "int | str | bytes",
			want: BinOr{
				X: BinOr{X: Name{Ident: "int"}, Y: Name{Ident: "str"}},
				Y: Name{Ident: "bytes"},
			},
		},
		{
			name: "callable parameter list",
			src:  "Callable[[int, str], bool]",
			want: Index{
				X: Name{Ident: "Callable"},
				Args: []Node{
					List{Elems: []Node{Name{Ident: "int"}, Name{Ident: "str"}}},
					Name{Ident: "bool"},
				},
			},
		},
		{
			name: "ellipsis",
			src:  "Callable[..., int]",
			want: Index{
				X:    Name{Ident: "Callable"},
				Args: []Node{EllipsisLit{}, Name{Ident: "int"}},
			},
		},
		{
			name: "literal values",
			src:  "Literal[1, 'a', True, -2]",
			want: Index{
				X: Name{Ident: "Literal"},
				Args: []Node{
					Num{Int: 1},
					Str{Value: "a"},
					Bool{Value: true},
					Num{Int: -2},
				},
			},
		},
		{
			name: "float literal",
			src:  "Literal[1.5]",
			want: Index{X: Name{Ident: "Literal"}, Args: []Node{Num{Float: 1.5, IsFloat: true}}},
		},
		{
			name: "quoted forward ref argument",
			src:  `list["Node"]`,
			want: Index{X: Name{Ident: "list"}, Args: []Node{Str{Value: "Node"}}},
		},
		{
			name: "trailing comma",
			src:  "tuple[int, str,]",
			want: Index{X: Name{Ident: "tuple"}, Args: []Node{Name{Ident: "int"}, Name{Ident: "str"}}},
		},
		{
			name: "parenthesized union",
			src:  "list[(int | str)]",
			want: Index{
				X:    Name{Ident: "list"},
				Args: []Node{BinOr{X: Name{Ident: "int"}, Y: Name{Ident: "str"}}},
			},
		},
		{
			name: "whitespace tolerated",
			src:  "  dict[ str ,  int ]  ",
			want: Index{X: Name{Ident: "dict"}, Args: []Node{Name{Ident: "str"}, Name{Ident: "int"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.src, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty input", src: ""},
		{name: "empty subscription", src: "list[]"},
		{name: "unterminated string", src: `list["Node`},
		{name: "unterminated subscription", src: "list[int"},
		{name: "trailing garbage", src: "int str"},
		{name: "lone operator", src: "| int"},
		{name: "dangling dot", src: "collections."},
		{name: "bare minus", src: "Literal[-]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.src); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.src)
			}
		})
	}
}
