package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/scene"
)

func newScene(t *testing.T, name string) *scene.Scene {
	t.Helper()
	s, err := scene.Decode(strings.NewReader(`
width = 200
height = 100

[[text]]
at = [100, 50]
text = "hello"
`))
	if err != nil {
		t.Fatal(err)
	}
	s.Name = name
	return s
}

// exercise runs the behaviour every Store must share.
func exercise(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := st.Get(ctx, "absent"); errors.GetCode(err) != errors.ErrCodeNotFound {
		t.Errorf("Get(absent) = %v, want NOT_FOUND", err)
	}
	if err := st.Put(ctx, newScene(t, "../escape")); errors.GetCode(err) != errors.ErrCodeInvalidScene {
		t.Errorf("Put(../escape) = %v, want INVALID_SCENE", err)
	}

	for _, name := range []string{"beta", "alpha"} {
		if err := st.Put(ctx, newScene(t, name)); err != nil {
			t.Fatalf("Put(%s): %v", name, err)
		}
	}
	names, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !slices.Equal(names, []string{"alpha", "beta"}) {
		t.Errorf("List = %v, want [alpha beta]", names)
	}

	got, err := st.Get(ctx, "alpha")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "alpha" || got.Width != 200 || len(got.Texts) != 1 || got.Texts[0].Text != "hello" {
		t.Errorf("Get = %+v", got)
	}

	updated := newScene(t, "alpha")
	updated.Width = 300
	if err := st.Put(ctx, updated); err != nil {
		t.Fatal(err)
	}
	if got, _ := st.Get(ctx, "alpha"); got == nil || got.Width != 300 {
		t.Errorf("Put did not replace alpha: %+v", got)
	}

	if err := st.Delete(ctx, "alpha"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := st.Delete(ctx, "alpha"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	if names, _ := st.List(ctx); !slices.Equal(names, []string{"beta"}) {
		t.Errorf("List after delete = %v", names)
	}
}

func TestDirStore(t *testing.T) {
	st, err := NewDirStore(filepath.Join(t.TempDir(), "scenes"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	exercise(t, st)
}

func TestDirStoreReadsJSON(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"plot.json":    `{"width": 640, "texts": [{"at": [1, 2], "text": "x"}]}`,
		"notes.txt":    "ignored",
		".hidden.toml": "width = 1",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	st, err := NewDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	names, err := st.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(names, []string{"plot"}) {
		t.Errorf("List = %v, want [plot]", names)
	}
	s, err := st.Get(context.Background(), "plot")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.Name != "plot" || s.Width != 640 {
		t.Errorf("Get = %q width %d", s.Name, s.Width)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("DRAWKIT_TEST_MONGO")
	if uri == "" {
		t.Skip("DRAWKIT_TEST_MONGO not set")
	}
	ctx := context.Background()
	st, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "drawkit_test", Collection: t.Name()})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer st.Close()
	defer st.coll.Drop(ctx)
	exercise(t, st)
}

func TestNewMongoStoreRequiresURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), MongoConfig{})
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("NewMongoStore without uri = %v, want INVALID_INPUT", err)
	}
}
