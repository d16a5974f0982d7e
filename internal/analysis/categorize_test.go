package analysis

import (
	"testing"

	"github.com/user/build-triage/internal/domain"
)

func sectionWith(lines ...string) domain.Section {
	return domain.Section{LineNumber: 1, Headline: lines[0], Lines: lines}
}

func TestCategorizeSection(t *testing.T) {
	tests := []struct {
		name string
		sec  domain.Section
		want string
	}{
		{
			name: "Linker Missing Library",
			sec:  sectionWith("/usr/bin/ld: cannot find -lcrypto"),
			want: domain.CategoryLinkerMissing,
		},
		{
			name: "Linker Undefined Reference",
			sec:  sectionWith("main.o: undefined reference to `curl_easy_init'"),
			want: domain.CategoryLinkerUndefined,
		},
		{
			name: "Undefined Symbol",
			sec:  sectionWith("ld.lld: undefined symbol: png_create_read_struct"),
			want: domain.CategoryLinkerUndefined,
		},
		{
			name: "CMake Error",
			sec:  sectionWith("CMake Error at CMakeLists.txt:12 (add_subdirectory)"),
			want: domain.CategoryCMakeConfig,
		},
		{
			name: "No Rule To Make Target",
			sec:  sectionWith("make[2]: *** No rule to make target 'proto/gen.h'"),
			want: domain.CategoryCMakeConfig,
		},
		{
			name: "Compiler Error",
			sec:  sectionWith("src/util.c:88:2: error: expected ';' before 'return'"),
			want: domain.CategoryCompilation,
		},
		{
			name: "Errors Generated Line",
			sec:  sectionWith("  2 errors generated."),
			want: domain.CategoryCompilation,
		},
		{
			name: "Unmatched Falls Through To Other",
			sec:  sectionWith("Segmentation fault (core dumped)"),
			want: domain.CategoryOther,
		},
		{
			name: "First Rule Wins",
			// Contains both a missing-library marker and a compiler error;
			// linker_missing is checked first.
			sec:  sectionWith("error: linking failed", "/usr/bin/ld: cannot find -lz"),
			want: domain.CategoryLinkerMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeSection(tt.sec); got != tt.want {
				t.Errorf("CategorizeSection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategorize_Histogram(t *testing.T) {
	sections := []domain.Section{
		sectionWith("a.c:1:1: error: nope"),
		sectionWith("b.o: undefined reference to `foo'"),
		sectionWith("c.c:9:1: error: still nope"),
		sectionWith("Segmentation fault (core dumped)"),
	}

	tags, hist := Categorize(sections)
	if len(tags) != len(sections) {
		t.Fatalf("expected one tag per section, got %d", len(tags))
	}

	want := map[string]int{
		domain.CategoryCompilation:     2,
		domain.CategoryLinkerUndefined: 1,
		domain.CategoryOther:           1,
	}
	for k, v := range want {
		if hist[k] != v {
			t.Errorf("histogram[%s] = %d, want %d", k, hist[k], v)
		}
	}
}

func TestCategorize_OrderIndependent(t *testing.T) {
	a := sectionWith("a.c:1:1: error: nope")
	b := sectionWith("b.o: undefined reference to `foo'")

	tagsAB, _ := Categorize([]domain.Section{a, b})
	tagsBA, _ := Categorize([]domain.Section{b, a})

	if tagsAB[0] != tagsBA[1] || tagsAB[1] != tagsBA[0] {
		t.Errorf("classification depends on section order: %v vs %v", tagsAB, tagsBA)
	}
}
