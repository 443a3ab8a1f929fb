package cmd

import (
	"bytes"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCapsXML = `<scan:ScannerCapabilities
    xmlns:scan="http://schemas.hp.com/imaging/escl/2011/05/03"
    xmlns:pwg="http://www.pwg.org/schemas/2010/12/sm">
  <pwg:ModelName>WideScan 3000</pwg:ModelName>
  <pwg:MakeAndModel>Acme WideScan 3000</pwg:MakeAndModel>
  <scan:Platen><scan:PlatenInputCaps>
    <scan:MinWidth>0</scan:MinWidth>
    <scan:MaxWidth>2550</scan:MaxWidth>
    <scan:MinHeight>0</scan:MinHeight>
    <scan:MaxHeight>3508</scan:MaxHeight>
    <scan:SettingProfiles><scan:SettingProfile>
      <scan:ColorModes><scan:ColorMode>RGB24</scan:ColorMode></scan:ColorModes>
      <scan:SupportedResolutions><scan:DiscreteResolutions>
        <scan:DiscreteResolution>
          <scan:XResolution>300</scan:XResolution>
          <scan:YResolution>300</scan:YResolution>
        </scan:DiscreteResolution>
        <scan:DiscreteResolution>
          <scan:XResolution>600</scan:XResolution>
          <scan:YResolution>600</scan:YResolution>
        </scan:DiscreteResolution>
      </scan:DiscreteResolutions></scan:SupportedResolutions>
    </scan:SettingProfile></scan:SettingProfiles>
  </scan:PlatenInputCaps></scan:Platen>
</scan:ScannerCapabilities>`

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := GetRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeTestCaps(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capabilities.xml")
	require.NoError(t, os.WriteFile(path, []byte(testCapsXML), 0o600))
	return path
}

func TestCapsCommandDump(t *testing.T) {
	out, err := runCommand(t, "caps", writeTestCaps(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Model: WideScan 3000")
	assert.Contains(t, out, "Vendor: Acme")
	assert.Contains(t, out, "Resolutions: 300 600")
}

func TestCapsCommandResolutionSelection(t *testing.T) {
	out, err := runCommand(t, "caps", writeTestCaps(t), "--resolution", "400")
	require.NoError(t, err)

	assert.Contains(t, out, "wanted 400 dpi, selected 300 dpi")
}

func TestCapsCommandRejectsBadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xml")
	require.NoError(t, os.WriteFile(path, []byte("<wrong/>"), 0o600))

	_, err := runCommand(t, "caps", path, "--resolution", "0")
	assert.Error(t, err)
}

func TestDecodeCommand(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 12, 7))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	dir := t.TempDir()
	input := filepath.Join(dir, "page.jpg")
	require.NoError(t, os.WriteFile(input, buf.Bytes(), 0o600))
	output := filepath.Join(dir, "page.png")

	out, err := runCommand(t, "decode", input, "--output", output)
	require.NoError(t, err)

	assert.Contains(t, out, "12x7")
	assert.Contains(t, out, "1 bytes/pixel")
	_, statErr := os.Stat(output)
	assert.NoError(t, statErr)
}

func TestDecodeCommandBadInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "page.jpg")
	require.NoError(t, os.WriteFile(input, []byte("junk"), 0o600))

	_, err := runCommand(t, "decode", input, "--output", "")
	assert.Error(t, err)
}
