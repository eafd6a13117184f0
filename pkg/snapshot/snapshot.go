// Package snapshot compares values against golden JSON files
package snapshot

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// UpdateEnv rewrites every snapshot when set
const UpdateEnv = "UPDATE_SNAPSHOTS"

// T is the part of *testing.T a snapshot needs
type T interface {
	assert.TestingT
	Helper()
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
}

// Assert compares the JSON encoding of obj with testdata/<name>.json
func Assert(t T, name string, obj interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()
	return AssertIn(t, "testdata", name, obj, msgAndArgs...)
}

// AssertIn compares the JSON encoding of obj with <dir>/<name>.json
// The file is written if it does not exist yet
func AssertIn(t T, dir, name string, obj interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()

	got, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode %s: %v", name, err)
	}

	filename := filepath.Join(dir, name+".json")
	want, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) || os.Getenv(UpdateEnv) != "" {
		write(t, filename, got)
		return true
	}

	if err != nil {
		t.Fatalf("could not read %s: %v", filename, err)
	}

	if !assert.JSONEq(t, string(want), string(got), msgAndArgs...) {
		t.Logf("snapshot %s differs, set %s=1 to accept the new value", filename, UpdateEnv)
		return false
	}

	return true
}

func write(t T, filename string, data []byte) {
	t.Helper()
	logrus.WithField("filename", filename).Info("writing snapshot file")

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatalf("could not create %s: %v", filepath.Dir(filename), err)
	}

	if err := os.WriteFile(filename, append(data, '\n'), 0644); err != nil {
		t.Fatalf("could not write %s: %v", filename, err)
	}
}
