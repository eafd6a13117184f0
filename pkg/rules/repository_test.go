package rules

import (
	"testing"
	"testing/fstest"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestRepository_GetOrLoad(t *testing.T) {
	a := assert.New(t)

	fsys := fstest.MapFS{
		"minimal.json": &fstest.MapFile{Data: []byte(minimal)},
		"broken.json":  &fstest.MapFile{Data: []byte(`{"game": "Broken"}`)},
		"README.md":    &fstest.MapFile{Data: []byte("ignored")},
	}

	repo := NewRepository(logrus.StandardLogger(), fsys)
	r1, err := repo.GetOrLoad("minimal")
	a.NoError(err)

	// the cache returns the same rules
	fsys["minimal.json"] = &fstest.MapFile{Data: []byte("not json")}
	r2, err := repo.GetOrLoad("minimal")
	a.NoError(err)
	a.Same(r1, r2)

	_, err = repo.GetOrLoad("broken")
	a.Error(err)

	_, err = repo.GetOrLoad("missing")
	a.Error(err)

	_, err = repo.GetOrLoad("../minimal")
	a.EqualError(err, "invalid variant name: ../minimal")

	names, err := repo.Names()
	a.NoError(err)
	a.Equal([]string{"broken", "minimal"}, names)

	a.Error(repo.LoadAll())
}
