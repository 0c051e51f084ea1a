// Package apk pulls DEX entries out of Android APK archives. An APK
// is a ZIP file holding a manifest, resources, bitmaps and one or more
// classes*.dex entries; only the DEX entries matter here.
package apk

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
)

// Entry is one DEX payload extracted from an archive.
type Entry struct {
	Name string
	Data []byte
}

var dexName = regexp.MustCompile(`(^|/)classes[0-9]*\.dex$`)

// IsArchive sniffs the ZIP local-file magic.
func IsArchive(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

// ExtractDex returns every classes*.dex entry of the archive at path,
// sorted by entry name so multidex processing order is stable.
func ExtractDex(path string) ([]Entry, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open APK %s: %w", path, err)
	}
	defer rc.Close()
	return extract(&rc.Reader, path)
}

// ExtractDexBytes is ExtractDex over an in-memory archive.
func ExtractDexBytes(data []byte, name string) ([]Entry, error) {
	z, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("unable to open APK %s: %w", name, err)
	}
	return extract(z, name)
}

func extract(z *zip.Reader, apk string) ([]Entry, error) {
	var out []Entry
	for _, f := range z.File {
		if !dexName.MatchString(f.Name) {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening apk %s dex %s: %w", apk, f.Name, err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("reading apk %s dex %s: %w", apk, f.Name, err)
		}
		out = append(out, Entry{Name: f.Name, Data: data})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// RunApktool decodes the APK with an external apktool binary and
// returns the DEX files found in its output directory. It serves as a
// fallback when direct ZIP extraction is not wanted, for APKs whose
// resources need decoding too.
func RunApktool(apkFile, outputDir string) ([]string, error) {
	apktoolOut := filepath.Join(outputDir, "apktool_out")
	cmd := exec.Command("apktool", "d", apkFile, "-f", "-o", apktoolOut)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("apktool: %v: %s", err, stderr.String())
		}
		return nil, fmt.Errorf("apktool: %w", err)
	}
	matches, err := filepath.Glob(filepath.Join(apktoolOut, "*.dex"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no DEX files in %s", apktoolOut)
	}
	sort.Strings(matches)
	return matches, nil
}

// ReadInput loads path and classifies it: a raw DEX file comes back as
// a single entry, an APK is unpacked.
func ReadInput(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if IsArchive(data) {
		return ExtractDexBytes(data, path)
	}
	return []Entry{{Name: filepath.Base(path), Data: data}}, nil
}
