// FILE: lixenwraith/cliconfig/io_test.go
package cliconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadConfigFile tests format selection and parsing
func TestReadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("TOML", func(t *testing.T) {
		path := writeFile(t, tmpDir, "c.toml", `
a = 1
b = "text"
c = ["x", "y"]

[__series__]
a = [1, 2]
`)
		data, err := ReadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, int64(1), data["a"])
		assert.Equal(t, "text", data["b"])
		assert.Equal(t, []any{"x", "y"}, data["c"])
		assert.Equal(t, map[string]any{"a": []any{int64(1), int64(2)}}, data[SeriesKey])
	})

	t.Run("YAML", func(t *testing.T) {
		for _, name := range []string{"c.yaml", "c.yml"} {
			path := writeFile(t, tmpDir, name, "a: 1\nb: text\nc: [x, y]\n__series__:\n  a: [1, 2]\n")
			data, err := ReadConfigFile(path)
			require.NoError(t, err)
			assert.Equal(t, 1, data["a"])
			assert.Equal(t, []any{"x", "y"}, data["c"])
			assert.Equal(t, map[string]any{"a": []any{1, 2}}, data[SeriesKey])
		}
	})

	t.Run("EmptyYAML", func(t *testing.T) {
		path := writeFile(t, tmpDir, "empty.yaml", "")
		data, err := ReadConfigFile(path)
		require.NoError(t, err)
		assert.NotNil(t, data)
		assert.Empty(t, data)
	})

	t.Run("JSONKeepsNumbers", func(t *testing.T) {
		path := writeFile(t, tmpDir, "c.json", `{"a": 9007199254740993, "f": 0.5}`)
		data, err := ReadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, json.Number("9007199254740993"), data["a"])
		assert.Equal(t, json.Number("0.5"), data["f"])
	})

	t.Run("UppercaseExtension", func(t *testing.T) {
		path := writeFile(t, tmpDir, "UPPER.JSON", `{"a": 1}`)
		_, err := ReadConfigFile(path)
		assert.NoError(t, err)
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		path := writeFile(t, tmpDir, "c.ini", "a=1")
		_, err := ReadConfigFile(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.Contains(t, err.Error(), ".ini")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := ReadConfigFile(filepath.Join(tmpDir, "nope.toml"))
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("ParseErrorsNameFile", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			msg     string
		}{
			{"bad.toml", "a = = 1", "failed to parse TOML"},
			{"bad.json", "{a:", "failed to parse JSON"},
			{"bad.yaml", "a: [1, 2", "failed to parse YAML"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := writeFile(t, tmpDir, tt.name, tt.content)
				_, err := ReadConfigFile(path)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.msg)
				assert.Contains(t, err.Error(), tt.name)
			})
		}
	})
}

// TestSeriesOrder tests that series keys come back in the order the file lists them
func TestSeriesOrder(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"table.toml", "[__series__]\nc = [\"x\", \"y\"]\nb = [\"p\"]\na = [0, 1]\n"},
		{"inline.toml", "__series__ = { c = [\"x\", \"y\"], b = [\"p\"], a = [0, 1] }\n"},
		{"dotted.toml", "__series__.c = [\"x\", \"y\"]\n__series__.b = [\"p\"]\n__series__.a = [0, 1]\n"},
		{"block.yaml", "a: 5\n__series__:\n  c: [x, y]\n  b: [p]\n  a: [0, 1]\n"},
		{"flow.yml", "__series__: {c: [x, y], b: [p], a: [0, 1]}\n"},
		{"nested.json", `{"a": {"c": 1, "a": 2}, "__series__": {"c": ["x", "y"], "b": ["p"], "a": [0, 1]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tmpDir, tt.name, tt.content)
			data, order, err := ReadConfigFileOrdered(path)
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "b", "a"}, order)
			assert.Contains(t, data, SeriesKey)
		})
	}

	t.Run("NoSeries", func(t *testing.T) {
		for name, content := range map[string]string{
			"plain.toml":  "a = 1\n",
			"plain.yaml":  "a: 1\n",
			"plain.json":  `{"a": 1}`,
			"empty.yaml":  "",
			"scalar.json": `{"__series__": 3}`,
		} {
			path := writeFile(t, tmpDir, name, content)
			_, order, err := ReadConfigFileOrdered(path)
			require.NoError(t, err, name)
			assert.Empty(t, order, name)
		}
	})
}

func TestWriteConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	data := map[string]any{
		"name":    "run",
		"epochs":  3,
		"tags":    []string{"a", "b"},
		"timeout": 2 * time.Second,
		"seed":    nil,
	}

	t.Run("TOMLDropsNull", func(t *testing.T) {
		path := filepath.Join(tmpDir, "out.toml")
		require.NoError(t, WriteConfigFile(path, data))

		back, err := ReadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, "run", back["name"])
		assert.Equal(t, "2s", back["timeout"])
		assert.Equal(t, []any{"a", "b"}, back["tags"])
		assert.NotContains(t, back, "seed")
	})

	t.Run("JSONKeepsNull", func(t *testing.T) {
		path := filepath.Join(tmpDir, "out.json")
		require.NoError(t, WriteConfigFile(path, data))

		back, err := ReadConfigFile(path)
		require.NoError(t, err)
		assert.Contains(t, back, "seed")
		assert.Nil(t, back["seed"])
		assert.Equal(t, json.Number("3"), back["epochs"])
	})

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(tmpDir, "nested", "dir", "out.yaml")
		require.NoError(t, WriteConfigFile(path, data))

		back, err := ReadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, 3, back["epochs"])
	})

	t.Run("NoTempFilesLeft", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, WriteConfigFile(filepath.Join(dir, "x.toml"), data))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		err := WriteConfigFile(filepath.Join(tmpDir, "out.xml"), data)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

// TestRoundTrip tests that saving then loading yields an equal instance
func TestRoundTrip(t *testing.T) {
	s := NewSchema("RoundTrip").
		Field("a", Int).
		Field("b", String, Default("test")).
		Field("c", List(String), DefaultFunc(func() any { return []string{"z"} })).
		Field("lr", Float, Default(0.5)).
		Field("flag", Bool, Default(true)).
		Field("wait", Duration, Default(1500*time.Millisecond)).
		Field("out", Path, Default(FilePath("runs/out"))).
		Field("mode", Literal("fast", "slow"), Default("slow")).
		Field("seed", Optional(Int), Default(nil)).
		Field("xs", PlainList(), DefaultFunc(func() any { return []any{} })).
		MustBuild()

	inst, err := s.New(map[string]any{"a": 1, "c": []string{"x", "y"}, "xs": []any{1, "a", 2.5}})
	require.NoError(t, err)

	for _, ext := range []string{".toml", ".yaml", ".yml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config"+ext)
			require.NoError(t, s.Save(inst, path))

			loaded, err := s.LoadOne(path, nil)
			require.NoError(t, err)
			assert.True(t, loaded.Equal(inst), "got %s want %s", loaded.Repr(), inst.Repr())
		})
	}

	t.Run("NullOverDefault", func(t *testing.T) {
		ns := NewSchema("Nullable").
			Field("seed", Optional(Int), Default(5)).
			MustBuild()
		cleared, err := ns.New(map[string]any{"seed": nil})
		require.NoError(t, err)

		for _, ext := range []string{".yaml", ".json"} {
			path := filepath.Join(t.TempDir(), "config"+ext)
			require.NoError(t, ns.Save(cleared, path))
			loaded, err := ns.LoadOne(path, nil)
			require.NoError(t, err)
			assert.True(t, loaded.Equal(cleared), ext)
		}

		err = ns.Save(cleared, filepath.Join(t.TempDir(), "config.toml"))
		assert.ErrorIs(t, err, ErrNullNotStorable)
		assert.Contains(t, err.Error(), `"seed"`)

		kept, err := ns.New(nil)
		require.NoError(t, err)
		assert.NoError(t, ns.Save(kept, filepath.Join(t.TempDir(), "config.toml")))
	})

	t.Run("InstanceSave", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, inst.Save(path))
		instances, err := s.Load(path, nil)
		require.NoError(t, err)
		require.Len(t, instances, 1)
		assert.True(t, instances[0].Equal(inst))
	})
}
