package parser

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		order MergeOrder
		maps  []DocMap
		want  DocMap
	}{
		{
			name:  "new lines before old",
			order: MergeNewFirst,
			maps:  []DocMap{{"A": {"one"}}, {"A": {"two"}}},
			want:  DocMap{"A": {"two", "one"}},
		},
		{
			name:  "three maps new first",
			order: MergeNewFirst,
			maps:  []DocMap{{"A": {"1"}}, {"A": {"2"}}, {"A": {"3"}}},
			want:  DocMap{"A": {"3", "2", "1"}},
		},
		{
			name:  "encounter order",
			order: MergeEncounter,
			maps:  []DocMap{{"A": {"1"}}, {"A": {"2"}}, {"A": {"3"}}},
			want:  DocMap{"A": {"1", "2", "3"}},
		},
		{
			name:  "distinct headers",
			order: MergeNewFirst,
			maps:  []DocMap{{"A": {"a"}}, {"B": {"b"}}, {}},
			want:  DocMap{"A": {"a"}, "B": {"b"}},
		},
		{
			name:  "no maps",
			order: MergeNewFirst,
			want:  DocMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeWith(tt.order, tt.maps...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MergeWith() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	first := DocMap{"A": {"one"}}
	second := DocMap{"A": {"two"}}

	merged := Merge(first, second)
	merged["A"][0] = "changed"

	if !reflect.DeepEqual(first, DocMap{"A": {"one"}}) {
		t.Errorf("first map mutated: %q", first)
	}
	if !reflect.DeepEqual(second, DocMap{"A": {"two"}}) {
		t.Errorf("second map mutated: %q", second)
	}
}

func TestParseMergeOrder(t *testing.T) {
	for in, want := range map[string]MergeOrder{
		"":          MergeNewFirst,
		"new-first": MergeNewFirst,
		"encounter": MergeEncounter,
	} {
		got, err := ParseMergeOrder(in)
		if err != nil || got != want {
			t.Errorf("ParseMergeOrder(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMergeOrder("sideways"); err == nil {
		t.Error("expected error for unknown merge order")
	}
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name  string
		docs  DocMap
		index []string
		want  []string
	}{
		{
			name:  "index first then remainder",
			docs:  DocMap{"2": {"two"}, "1": {"one"}, "3": {"three"}},
			index: []string{"1", "3"},
			want:  []string{"1", "one", "3", "three", "2", "two"},
		},
		{
			name:  "index entries missing from map are skipped",
			docs:  DocMap{"1": {"one"}},
			index: []string{"missing", "1"},
			want:  []string{"1", "one"},
		},
		{
			name:  "duplicate index entries emit once",
			docs:  DocMap{"1": {"one"}},
			index: []string{"1", "1"},
			want:  []string{"1", "one"},
		},
		{
			name: "remainder sorted by header",
			docs: DocMap{"b": {"B"}, "a": {"A1", "A2"}, "c": {}},
			want: []string{"a", "A1", "A2", "b", "B", "c"},
		},
		{
			name: "single entry",
			docs: DocMap{"# Intro": {"hello", "world"}},
			want: []string{"# Intro", "hello", "world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Order(tt.docs, tt.index)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Order() = %q, want %q", got, tt.want)
			}
			again := Order(tt.docs, tt.index)
			if !reflect.DeepEqual(again, got) {
				t.Errorf("Order() not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestOrder_Empty(t *testing.T) {
	if got := Order(DocMap{}, nil); len(got) != 0 {
		t.Errorf("Order(empty) = %q, want empty", got)
	}
}

func TestOrder_DoesNotMutateMap(t *testing.T) {
	docs := DocMap{"1": {"one"}, "2": {"two"}}
	Order(docs, []string{"1"})
	if len(docs) != 2 {
		t.Errorf("Order removed entries from its input: %q", docs)
	}
}

func TestSections(t *testing.T) {
	docs := DocMap{"2": {"two"}, "1": {"one"}, "3": {"three"}}
	got := Sections(docs, []string{"3"})
	want := []Block{
		{Header: "3", Lines: []string{"three"}},
		{Header: "1", Lines: []string{"one"}},
		{Header: "2", Lines: []string{"two"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sections() = %+v, want %+v", got, want)
	}
}

func TestPipeline_TwoFiles(t *testing.T) {
	file1 := Accumulate("/** \n# Intro\n* hello\n*/", javaDoc)
	file2 := Accumulate("/** \n# Intro\n* world\n*/", javaDoc)

	merged := Merge(file1, file2)
	want := DocMap{"# Intro": {"world", "hello"}}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("Merge() = %q, want %q", merged, want)
	}

	got := Order(merged, nil)
	if !reflect.DeepEqual(got, []string{"# Intro", "world", "hello"}) {
		t.Errorf("Order() = %q", got)
	}
}
