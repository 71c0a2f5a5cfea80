package edn

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// UTF8BOM is the utf-8 byte-order marker
var UTF8BOM = []byte{'\xef', '\xbb', '\xbf'}

// detection sample size
const sniffLen = 2048

// NewCharsetSource decodes r from the named encoding (any WHATWG label, e.g. "latin1",
// "utf-16le", "shift_jis") before reading it.
func NewCharsetSource(r io.Reader, label string) (CharacterSource, error) {
	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, errors.Errorf("unknown encoding: %s", label)
	}
	if name == "utf-8" {
		return NewSource(r), nil
	}
	return NewSource(transform.NewReader(r, enc.NewDecoder())), nil
}

// NewDetectedSource sniffs the start of r to guess its encoding and returns a source
// decoding it, along with the detected charset name. A leading UTF-8 BOM is dropped.
// Input whose encoding cannot be detected or decoded is an error.
func NewDetectedSource(r io.Reader) (CharacterSource, string, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", errors.Wrap(err, "sniff encoding")
	}

	if bytes.HasPrefix(head, UTF8BOM) {
		_, _ = br.Discard(len(UTF8BOM))
		return NewSource(br), "UTF-8", nil
	}

	label, err := DetectEncoding(head)
	if err != nil {
		return nil, "", errors.Wrap(err, "detect encoding")
	}
	if label == "UTF-8" {
		return NewSource(br), label, nil
	}

	src, err := NewCharsetSource(br, label)
	if err != nil {
		// chardet knows a few charsets the WHATWG table does not
		return nil, label, err
	}
	return src, label, nil
}

// detectedCharsetOrder breaks ties between equally confident guesses; earlier wins.
var detectedCharsetOrder = []string{
	"utf-8", "utf-16be", "utf-16le", "utf-32be", "utf-32le",
	"iso-8859-1", "windows-1252", "iso-8859-2", "windows-1250",
	"iso-8859-5", "iso-8859-6", "iso-8859-7", "windows-1253",
	"iso-8859-8-i", "windows-1255", "iso-8859-8", "windows-1251",
	"windows-1256", "koi8-r", "iso-8859-9", "windows-1254",
	"shift_jis", "gb18030", "euc-jp", "euc-kr", "big5",
	"iso-2022-jp", "iso-2022-kr", "iso-2022-cn",
	"ibm424_rtl", "ibm424_ltr", "ibm420_rtl", "ibm420_ltr",
}

var detectedCharsetScore = func() map[string]int {
	score := make(map[string]int, len(detectedCharsetOrder))
	for i, name := range detectedCharsetOrder {
		score[name] = i
	}
	return score
}()

// DetectEncoding guesses the charset of content, preferring UTF-8 whenever content is
// valid UTF-8 apart from a character cut off at the end.
func DetectEncoding(content []byte) (string, error) {
	toValidate := content
	for i := 0; i < utf8.UTFMax-1 && i < len(toValidate); i++ {
		start := len(toValidate) - 1 - i
		if !utf8.RuneStart(toValidate[start]) {
			continue
		}
		if !utf8.FullRune(toValidate[start:]) {
			toValidate = toValidate[:start]
		}
		break
	}
	if utf8.Valid(toValidate) {
		return "UTF-8", nil
	}

	textDetector := chardet.NewTextDetector()
	detectContent := content
	if len(content) < 1024 {
		// the detector needs a longer sample than most scalar inputs give it
		if _, err := textDetector.DetectBest(content); err != nil {
			return "", err
		}
		times := 1024 / len(content)
		detectContent = make([]byte, 0, times*len(content))
		for i := 0; i < times; i++ {
			detectContent = append(detectContent, content...)
		}
	}

	// results[0] alone is not stable between equally confident guesses
	results, err := textDetector.DetectAll(detectContent)
	if err != nil {
		return "", err
	}

	topConfidence := results[0].Confidence
	topResult := results[0]
	priority, has := detectedCharsetScore[strings.ToLower(strings.TrimSpace(topResult.Charset))]
	for _, result := range results {
		if result.Confidence != topConfidence {
			break
		}
		resultPriority, resultHas := detectedCharsetScore[strings.ToLower(strings.TrimSpace(result.Charset))]
		if resultHas && (!has || resultPriority < priority) {
			topResult = result
			priority = resultPriority
			has = true
		}
	}
	return topResult.Charset, nil
}
