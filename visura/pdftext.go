package visura

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

// extractPDFText legge l'intero PDF e ne ricava il testo grezzo pagina per
// pagina. Le pagine illeggibili vengono saltate senza interrompere le altre.
func extractPDFText(data []byte) (string, error) {
	conf := model.NewDefaultConfiguration()

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return "", fmt.Errorf("lettura PDF fallita: %w", err)
	}

	var raw strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		contentReader, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil || contentReader == nil {
			continue
		}
		content, err := io.ReadAll(contentReader)
		if err != nil {
			continue
		}
		raw.WriteString(textFromContentStream(string(content)))
		raw.WriteString("\n")
	}
	return raw.String(), nil
}

// textFromContentStream estrae le stringhe di testo da un content stream
// PDF: stringhe letterali tra parentesi e stringhe esadecimali tra <>.
func textFromContentStream(content string) string {
	var out strings.Builder

	for _, s := range literalStrings(content) {
		out.WriteString(decodeLiteral(s))
		out.WriteString("\n")
	}

	hexRe := regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
	for _, m := range hexRe.FindAllStringSubmatch(content, -1) {
		if text := decodeHex(m[1]); text != "" {
			out.WriteString(text)
			out.WriteString("\n")
		}
	}
	return out.String()
}

// literalStrings raccoglie le stringhe tra parentesi gestendo escape e
// parentesi annidate.
func literalStrings(content string) []string {
	var results []string
	for i := 0; i < len(content); {
		if content[i] != '(' {
			i++
			continue
		}
		str, end := literalString(content, i)
		if end > i {
			results = append(results, str)
			i = end
		} else {
			i++
		}
	}
	return results
}

func literalString(content string, start int) (string, int) {
	var out strings.Builder
	depth := 0
	i := start
	for i < len(content) {
		ch := content[i]
		if ch == '\\' && i+1 < len(content) {
			out.WriteByte(ch)
			out.WriteByte(content[i+1])
			i += 2
			continue
		}
		switch {
		case ch == '(':
			depth++
			if depth > 1 {
				out.WriteByte(ch)
			}
		case ch == ')':
			depth--
			if depth == 0 {
				return out.String(), i + 1
			}
			out.WriteByte(ch)
		case depth > 0:
			out.WriteByte(ch)
		}
		i++
	}
	return out.String(), i
}

// decodeLiteral risolve le sequenze di escape delle stringhe letterali PDF
// e converte da Windows-1252 quando il contenuto non è UTF-8 valido.
func decodeLiteral(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			out.WriteByte(s[i])
			i++
			continue
		}
		switch s[i+1] {
		case 'n':
			out.WriteRune('\n')
		case 'r':
			out.WriteRune('\r')
		case 't':
			out.WriteRune('\t')
		case 'b':
			out.WriteRune('\b')
		case 'f':
			out.WriteRune('\f')
		case '(', ')', '\\':
			out.WriteByte(s[i+1])
		default:
			if s[i+1] >= '0' && s[i+1] <= '7' {
				octal := string(s[i+1])
				j := i + 2
				for k := 0; k < 2 && j < len(s) && s[j] >= '0' && s[j] <= '7'; k++ {
					octal += string(s[j])
					j++
				}
				if val, err := strconv.ParseInt(octal, 8, 32); err == nil {
					out.WriteRune(rune(val))
				}
				i = j
				continue
			}
			out.WriteByte(s[i+1])
		}
		i += 2
	}

	decoded := out.String()
	if containsHighBytes(decoded) {
		if converted, err := charmap.Windows1252.NewDecoder().String(decoded); err == nil {
			return converted
		}
	}
	return decoded
}

// decodeHex decodifica una stringa esadecimale, riconoscendo UTF-16BE.
func decodeHex(hex string) string {
	if len(hex)%2 != 0 {
		hex += "0"
	}
	data := make([]byte, len(hex)/2)
	for i := 0; i+1 < len(hex); i += 2 {
		val, err := strconv.ParseInt(hex[i:i+2], 16, 32)
		if err != nil {
			continue
		}
		data[i/2] = byte(val)
	}

	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return decodeUTF16BE(data[2:])
	}
	if likelyUTF16BE(data) {
		return decodeUTF16BE(data)
	}

	var out strings.Builder
	for _, b := range data {
		if b >= 32 {
			out.WriteByte(b)
		}
	}
	decoded := out.String()
	if containsHighBytes(decoded) {
		if converted, err := charmap.Windows1252.NewDecoder().String(decoded); err == nil {
			return converted
		}
	}
	return decoded
}

func containsHighBytes(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return true
		}
	}
	return false
}

// likelyUTF16BE riconosce UTF-16BE dal pattern di byte alti nulli tipico
// del testo latino.
func likelyUTF16BE(data []byte) bool {
	if len(data) < 4 || len(data)%2 != 0 {
		return false
	}
	zeros := 0
	for i := 0; i < len(data); i += 2 {
		if data[i] == 0 {
			zeros++
		}
	}
	return zeros > len(data)/4
}

func decodeUTF16BE(data []byte) string {
	if len(data)%2 != 0 {
		data = append(data, 0)
	}
	u16 := make([]uint16, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		u16[i/2] = uint16(data[i])<<8 | uint16(data[i+1])
	}
	var out strings.Builder
	for _, r := range utf16.Decode(u16) {
		if r >= 32 || r == '\n' || r == '\r' || r == '\t' {
			out.WriteRune(r)
		}
	}
	return out.String()
}
