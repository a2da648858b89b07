package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	sniffSampleSize              = 4096
	nonPrintableThresholdPercent = 30
)

// Kind classifies what the launcher should do with a path.
type Kind int

const (
	KindMissing Kind = iota
	KindDir
	KindText
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	}
	return "missing"
}

var binaryExtensions = map[string]struct{}{
	".7z": {}, ".avi": {}, ".bin": {}, ".bmp": {}, ".bz2": {}, ".class": {},
	".dll": {}, ".doc": {}, ".docx": {}, ".dylib": {}, ".exe": {}, ".flac": {},
	".gif": {}, ".gz": {}, ".ico": {}, ".iso": {}, ".jar": {}, ".jpeg": {},
	".jpg": {}, ".mkv": {}, ".mov": {}, ".mp3": {}, ".mp4": {}, ".ogg": {},
	".otf": {}, ".pdf": {}, ".png": {}, ".psd": {}, ".so": {}, ".tar": {},
	".tgz": {}, ".ttf": {}, ".wav": {}, ".wasm": {}, ".webp": {}, ".woff": {},
	".woff2": {}, ".xls": {}, ".xlsx": {}, ".xz": {}, ".zip": {},
}

// Sniff stats path and, for regular files, reads the head of the file to
// decide between text and binary.
func Sniff(path string) (Kind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return KindMissing, err
	}
	if info.IsDir() {
		return KindDir, nil
	}
	if hasBinaryExtension(path) {
		return KindBinary, nil
	}
	sample, err := readHead(path, sniffSampleSize)
	if err != nil {
		return KindMissing, err
	}
	if LooksLikeText(sample) {
		return KindText, nil
	}
	return KindBinary, nil
}

// LooksLikeText guesses whether sample is the start of a text file.
func LooksLikeText(sample []byte) bool {
	if len(sample) == 0 {
		return true
	}
	if len(sample) > sniffSampleSize {
		sample = sample[:sniffSampleSize]
	}
	if endian, ok := utf16Endianness(sample); ok {
		return decodesAsUTF16(sample, endian)
	}
	if bytes.HasPrefix(sample, []byte{0xEF, 0xBB, 0xBF}) {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}

	printable := 0
	for _, b := range sample {
		if isCommonTextByte(b) {
			printable++
		}
	}
	if printable == 0 {
		return false
	}
	return (len(sample)-printable)*100/len(sample) < nonPrintableThresholdPercent
}

func readHead(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return io.ReadAll(io.LimitReader(f, limit))
}

func hasBinaryExtension(path string) bool {
	_, ok := binaryExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == 0x09 || b == 0x0A || b == 0x0D || b == 0x1B:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	}
	return b >= 0x80
}

func utf16Endianness(sample []byte) (unicode.Endianness, bool) {
	if len(sample) < 2 {
		return unicode.LittleEndian, false
	}
	switch {
	case sample[0] == 0xFF && sample[1] == 0xFE:
		return unicode.LittleEndian, true
	case sample[0] == 0xFE && sample[1] == 0xFF:
		return unicode.BigEndian, true
	}
	return unicode.LittleEndian, false
}

func decodesAsUTF16(sample []byte, endian unicode.Endianness) bool {
	if len(sample)%2 == 1 {
		sample = sample[:len(sample)-1]
	}
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(sample)
	if err != nil {
		return false
	}
	return bytes.IndexByte(out, 0x00) == -1
}
