package reveal

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lsbsteg/charset"
	"lsbsteg/imgfile"
	"lsbsteg/lsb"
	"lsbsteg/parallel"
	"lsbsteg/pixgrid"
	"lsbsteg/plane"
)

func writeStego(t *testing.T, dir, name string, w, h int, codes []uint16) string {
	t.Helper()

	g, err := pixgrid.New(w, h)
	require.NoError(t, err)
	for i := range g.Pix {
		g.Pix[i] = pixgrid.SampleFromRGB24(uint32(i) * 0x0A0B0C &^ 0x010101)
	}

	path := filepath.Join(dir, name)
	require.NoError(t, imgfile.Save(lsb.EncodeCodes(g, codes), imgfile.FormatFor(path, imgfile.FormatBMP), path, false))
	return path
}

func utf16Codes(t *testing.T, s string) []uint16 {
	t.Helper()

	codes, err := charset.Codes("", s)
	require.NoError(t, err)
	return codes
}

func run(t *testing.T, c *CLICmd, workers int) (string, error) {
	t.Helper()

	var out bytes.Buffer
	c.Out = &out
	require.NoError(t, c.Validate(nil))

	pool := parallel.Start(workers)
	err := c.Run(pool.Do, pool.Wait)
	return out.String(), err
}

func TestRunSingle(t *testing.T) {
	dir := t.TempDir()
	img := writeStego(t, dir, "a.bmp", 5, 5, utf16Codes(t, "@`à À"))

	out, err := run(t, &CLICmd{Images: []string{img}, Plane: plane.Flags{Scale: 1, Format: "png"}}, 1)
	require.NoError(t, err)
	assert.Equal(t, "@`à À\n", out)
}

func TestRunBatchKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var images []string
	var want strings.Builder
	for i, msg := range []string{"@", "``", "@@@", "àà", "ÀÀ@"} {
		name := filepath.Join(dir, string(rune('a'+i))+".png")
		writeStego(t, dir, filepath.Base(name), 4, 4, utf16Codes(t, msg))
		images = append(images, name)
		want.WriteString(name + ": " + msg + "\n")
	}

	out, err := run(t, &CLICmd{Images: images, Plane: plane.Flags{Scale: 1, Format: "png"}}, 4)
	require.NoError(t, err)
	assert.Equal(t, want.String(), out)
}

func TestRunReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeStego(t, dir, "good.bmp", 2, 2, utf16Codes(t, "@"))
	bad := filepath.Join(dir, "missing.bmp")

	out, err := run(t, &CLICmd{Images: []string{bad, good}, Plane: plane.Flags{Scale: 1, Format: "png"}}, 2)
	assert.EqualError(t, err, "error processing 1 files")
	assert.Equal(t, good+": @\n", out)
}

func TestRunCharset(t *testing.T) {
	dir := t.TempDir()
	codes, err := charset.Codes("koi8-r", "ю")
	require.NoError(t, err)
	img := writeStego(t, dir, "k.bmp", 3, 1, codes)

	out, err := run(t, &CLICmd{Images: []string{img}, Charset: "koi8-r", Plane: plane.Flags{Scale: 1, Format: "png"}}, 1)
	require.NoError(t, err)
	assert.Equal(t, "ю\n", out)
}

func TestRunWritesPlanes(t *testing.T) {
	dir := t.TempDir()
	planes := filepath.Join(dir, "planes")
	img := writeStego(t, dir, "c.bmp", 4, 3, utf16Codes(t, "à@"))

	c := &CLICmd{
		Images: []string{img},
		Plane:  plane.Flags{Dir: planes, Palette: "mono", Scale: 2, Format: "bmp"},
	}
	_, err := run(t, c, 1)
	require.NoError(t, err)

	g, format, err := imgfile.Load(filepath.Join(planes, "c_plane.bmp"))
	require.NoError(t, err)
	assert.Equal(t, "bmp", format)
	assert.Equal(t, 8, g.Width())
	assert.Equal(t, 6, g.Height())
	// 'à' has bits 7, 6 and 5 set, the untouched pixels none.
	assert.Equal(t, pixgrid.Sample{R: 0xFF, G: 0xFF, B: 0xFF}, g.SampleAt(1, 1))
	assert.Equal(t, pixgrid.Sample{}, g.SampleAt(7, 5))
}

func TestValidateRejectsBadPlaneFlags(t *testing.T) {
	c := &CLICmd{Images: []string{"x.bmp"}, Plane: plane.Flags{Scale: 0, Format: "png"}}
	assert.Error(t, c.Validate(nil))

	c = &CLICmd{Images: []string{"x.bmp"}, Plane: plane.Flags{Scale: 1, Format: "gif"}}
	assert.Error(t, c.Validate(nil))

	c = &CLICmd{Images: []string{"x.bmp"}, Charset: "nope", Plane: plane.Flags{Scale: 1, Format: "png"}}
	assert.Error(t, c.Validate(nil))
}
