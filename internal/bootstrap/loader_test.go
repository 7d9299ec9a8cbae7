package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestUnpackYAMLLine(t *testing.T) {
	require.Equal(t, "enr:-abc", unpackYAMLLine(`- "enr:-abc"`))
	require.Equal(t, "bare-entry", unpackYAMLLine("bare-entry"))
}

func TestYAMLUnwrapRoundTrip(t *testing.T) {
	raw := "/ip4/1.2.3.4/tcp/9000/p2p/16Uiu2HAmEsbKBkd9iUYcqfjwwK8ZmMjrZAJbEYQ6EP3Lm7XXJMQa"
	wrapped := `- "` + raw + `"`
	unwrapped := unpackYAMLLine(wrapped)
	require.Equal(t, raw, unwrapped)

	addrFromWrapped, err := Classify(unwrapped)
	require.NoError(t, err)
	addrFromBare, err := Classify(raw)
	require.NoError(t, err)
	require.Equal(t, addrFromBare.String(), addrFromWrapped.String())
}

func TestLoadMixedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boot.txt")
	content := "\n" +
		`- "/ip4/1.2.3.4/tcp/9000/p2p/16Uiu2HAmEsbKBkd9iUYcqfjwwK8ZmMjrZAJbEYQ6EP3Lm7XXJMQa"` + "\r\n" +
		"junk\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	addrs, errs := Load(LoaderConfig{FilePath: path}, discardLogger())
	require.Len(t, addrs, 1)
	require.Len(t, errs, 1)
}

func TestLoadEmptyYieldsEmptyList(t *testing.T) {
	addrs, errs := Load(LoaderConfig{}, discardLogger())
	require.Empty(t, addrs)
	require.Empty(t, errs)
}
