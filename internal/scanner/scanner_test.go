package scanner

import (
	"strings"
	"testing"

	"github.com/fenilsonani/tidydir/internal/config"
	"github.com/fenilsonani/tidydir/internal/fileops"
	"github.com/fenilsonani/tidydir/internal/testutil"
)

func testConfig(root string) *config.Config {
	cfg := config.GetDefault()
	cfg.Directory = root
	return cfg
}

// =============================================================================
// Rules Tests
// =============================================================================

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.jpg", ".jpg"},
		{"PHOTO.JPG", ".jpg"},
		{"archive.tar.gz", ".gz"},
		{"README", ""},
		{".bashrc", ""},
		{"trailing.", ""},
		{"..hidden", ".hidden"},
		{"a.b.C", ".c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extension(tt.name); got != tt.want {
				t.Errorf("Extension(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestRules(t *testing.T) {
	rules := Rules{
		BundleSuffixes:  []string{".app", ".photoslibrary"},
		ExcludePatterns: []string{"*.{part,crdownload}", ".DS_Store"},
	}

	if !rules.IsBundle("Safari.app") {
		t.Error("Safari.app should be a bundle")
	}
	if !rules.IsBundle("Photos.photoslibrary") {
		t.Error("Photos.photoslibrary should be a bundle")
	}
	if rules.IsBundle("apps") {
		t.Error("apps should not be a bundle")
	}
	if !rules.IsExcluded("movie.part") || !rules.IsExcluded("movie.crdownload") || !rules.IsExcluded(".DS_Store") {
		t.Error("expected excluded names to match")
	}
	if rules.IsExcluded("movie.mp4") {
		t.Error("movie.mp4 should not be excluded")
	}
}

func TestNewRulesDefaultsBundleSuffix(t *testing.T) {
	rules := NewRules(&config.Config{})
	if !rules.IsBundle("Xcode.app") {
		t.Error("default rules should treat .app as a bundle")
	}
}

// =============================================================================
// OrderPair Tests
// =============================================================================

func TestOrderPair(t *testing.T) {
	tests := []struct {
		name          string
		first, later  string
		wantOriginal  string
		wantDuplicate string
	}{
		{"neither has copy - roles swap", "/r/a.txt", "/r/b.txt", "/r/b.txt", "/r/a.txt"},
		{"first has copy", "/r/a copy.txt", "/r/a.txt", "/r/a.txt", "/r/a copy.txt"},
		{"later has copy", "/r/a.txt", "/r/a copy.txt", "/r/a.txt", "/r/a copy.txt"},
		{"both have copy", "/r/x copy.txt", "/r/y copy.txt", "/r/y copy.txt", "/r/x copy.txt"},
		{"case insensitive", "/r/a.txt", "/r/A COPY.TXT", "/r/a.txt", "/r/A COPY.TXT"},
		{"only base name counts", "/copy/a.txt", "/r/b.txt", "/r/b.txt", "/copy/a.txt"},
		{"directory name ignored for later", "/r/a.txt", "/copy/b.txt", "/copy/b.txt", "/r/a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := OrderPair(tt.first, tt.later)
			if pair.Original != tt.wantOriginal || pair.Duplicate != tt.wantDuplicate {
				t.Errorf("OrderPair(%q, %q) = (%q, %q), want (%q, %q)",
					tt.first, tt.later, pair.Original, pair.Duplicate, tt.wantOriginal, tt.wantDuplicate)
			}
		})
	}
}

// =============================================================================
// FindDuplicates Tests
// =============================================================================

func TestFindDuplicatesPairsInDiscoveryOrder(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFiles(map[string]string{
		"a/one.txt":  "same",
		"b/two.txt":  "same",
		"c.txt":      "other",
		"d/copy.txt": "other",
	})

	logger, _ := testutil.NewLogger()
	result, err := New(testConfig(f.RootDir), logger).FindDuplicates(f.RootDir)
	if err != nil {
		t.Fatalf("FindDuplicates failed: %v", err)
	}

	if result.FilesHashed != 4 {
		t.Errorf("FilesHashed = %d, want 4", result.FilesHashed)
	}
	if len(result.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d: %+v", len(result.Pairs), result.Pairs)
	}

	// a/one.txt seen first, neither name has "copy": roles swap
	first := result.Pairs[0]
	if f.RelPath(first.Original) != "b/two.txt" || f.RelPath(first.Duplicate) != "a/one.txt" {
		t.Errorf("pair 0 = (%s, %s)", f.RelPath(first.Original), f.RelPath(first.Duplicate))
	}

	// c.txt seen first, later name has "copy": c.txt kept
	second := result.Pairs[1]
	if f.RelPath(second.Original) != "c.txt" || f.RelPath(second.Duplicate) != "d/copy.txt" {
		t.Errorf("pair 1 = (%s, %s)", f.RelPath(second.Original), f.RelPath(second.Duplicate))
	}
	if second.Size != int64(len("other")) || second.Hash == "" {
		t.Errorf("pair should carry size and hash: %+v", second)
	}
	if result.TotalSize() != int64(len("same")+len("other")) {
		t.Errorf("TotalSize = %d", result.TotalSize())
	}
}

func TestFindDuplicatesThreeCopies(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFiles(map[string]string{
		"1.txt": "x",
		"2.txt": "x",
		"3.txt": "x",
	})

	logger, _ := testutil.NewLogger()
	result, err := New(testConfig(f.RootDir), logger).FindDuplicates(f.RootDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(result.Pairs))
	}
	for _, p := range result.Pairs {
		if f.RelPath(p.Duplicate) != "1.txt" {
			t.Errorf("every pair should offer the first-seen file, got %s", f.RelPath(p.Duplicate))
		}
	}
}

func TestFindDuplicatesSkipsBundlesAndExcluded(t *testing.T) {
	testutil.SkipOnWindows(t)

	f := testutil.NewFixture(t)
	f.CreateFiles(map[string]string{
		"keep.txt":                      "payload",
		"Tool.app/Contents/payload.txt": "payload",
		"Tool.app/Contents/twin.txt":    "payload",
		"skip.part":                     "payload",
	})
	f.CreateSymlink(f.Path("keep.txt"), "link.txt")

	cfg := testConfig(f.RootDir)
	cfg.ExcludePatterns = []string{"*.part"}

	logger, logs := testutil.NewLogger()
	result, err := New(cfg, logger).FindDuplicates(f.RootDir)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Pairs) != 0 {
		t.Errorf("expected no pairs, got %+v", result.Pairs)
	}
	if result.FilesHashed != 1 {
		t.Errorf("FilesHashed = %d, want 1", result.FilesHashed)
	}
	if !strings.Contains(logs.String(), "Skipping bundle directory") {
		t.Errorf("bundle skip should be logged:\n%s", logs.String())
	}
}

func TestFindDuplicatesUnreadableFile(t *testing.T) {
	testutil.SkipOnWindows(t)
	testutil.SkipIfRoot(t)

	f := testutil.NewFixture(t)
	f.CreateFile("a.txt", []byte("same"))
	f.CreateFileWithMode("b.txt", []byte("same"), 0000)

	logger, logs := testutil.NewLogger()
	result, err := New(testConfig(f.RootDir), logger).FindDuplicates(f.RootDir)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Pairs) != 0 {
		t.Errorf("unreadable file must not be paired: %+v", result.Pairs)
	}
	if len(result.Errors) != 1 || result.Errors[0].Reason != fileops.ErrorPermissionDenied {
		t.Errorf("expected one permission error, got %+v", result.Errors)
	}
	if logs.Count("Cannot hash file") != 1 {
		t.Errorf("hash failure should be logged once:\n%s", logs.String())
	}
}

func TestFindDuplicatesMissingRoot(t *testing.T) {
	f := testutil.NewFixture(t)
	logger, _ := testutil.NewLogger()

	if _, err := New(testConfig(f.RootDir), logger).FindDuplicates(f.Path("missing")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestFindDuplicatesReportsProgress(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFiles(map[string]string{"a.txt": "12345", "b.txt": "678"})

	logger, _ := testutil.NewLogger()
	s := New(testConfig(f.RootDir), logger)

	var calls int
	var lastFiles int
	var lastBytes int64
	s.SetProgress(func(path string, filesHashed int, bytesHashed int64) {
		calls++
		lastFiles, lastBytes = filesHashed, bytesHashed
	})

	if _, err := s.FindDuplicates(f.RootDir); err != nil {
		t.Fatal(err)
	}
	if calls != 2 || lastFiles != 2 || lastBytes != 8 {
		t.Errorf("progress calls=%d files=%d bytes=%d, want 2, 2, 8", calls, lastFiles, lastBytes)
	}
}
