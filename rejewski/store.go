package rejewski

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/ugorji/go/codec"

	"github.com/bgallie/enigma/internal/logger"
)

const (
	// ApiLevel is the version of the dictionary file layout.
	ApiLevel   = 1
	headerMark = "+ENIGMA"
	pemType    = "ENIGMA Chain Dictionary"
)

// Format selects how a dictionary is written.
type Format int

const (
	Binary Format = iota
	ASCII85
	PEM
)

func (f Format) String() string {
	switch f {
	case ASCII85:
		return "ascii85"
	case PEM:
		return "pem"
	}
	return "binary"
}

// SaveOptions controls Save.
type SaveOptions struct {
	Format   Format
	Compress bool
}

var (
	ErrFormat   = errors.New("rejewski: not a chain dictionary")
	ErrApiLevel = errors.New("rejewski: dictionary API level mismatch")
)

// fromReader copies rdr into a pipe so the filters can be chained onto it.
func fromReader(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	go func() {
		_, err := io.Copy(rWrtr, rdr)
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}

// drain reads rdr to its end so that every goroutine feeding the pipeline
// behind it can finish.
func drain(rdr io.Reader) {
	io.Copy(io.Discard, rdr)
}

// Save writes the table to w.  Entries are written in index order and the
// candidates of each entry in the order they were added.
//
// The binary and ASCII85 forms start with the line
//
//	+ENIGMA|<api level>|<b or a>|<compressed>|<entries>
//
// and the PEM form carries the same facts as block headers.
func Save(w io.Writer, t *Table, opts SaveOptions) error {
	entries := t.Entries()
	var (
		payload []byte
		mh      codec.MsgpackHandle
	)
	enc := codec.NewEncoderBytes(&payload, &mh)
	if err := enc.Encode(entries); err != nil {
		return err
	}

	encIn := fromReader(bytes.NewReader(payload))
	if opts.Compress {
		encIn = fromReader(flate.ToFlate(encIn))
	}

	var (
		out    io.Reader
		header string
	)
	switch opts.Format {
	case PEM:
		var blck pem.Block
		blck.Type = pemType
		blck.Headers = make(map[string]string)
		blck.Headers["ApiLevel"] = strconv.Itoa(ApiLevel)
		blck.Headers["Compression"] = fmt.Sprintf("%v", opts.Compress)
		blck.Headers["Entries"] = strconv.Itoa(len(entries))
		out = pem.ToPem(bufio.NewReader(encIn), blck)
	case ASCII85:
		header = fmt.Sprintf("%s|%d|a|%v|%d\n", headerMark, ApiLevel, opts.Compress, len(entries))
		out = lines.SplitToLines(ascii85.ToASCII85(encIn))
	default:
		header = fmt.Sprintf("%s|%d|b|%v|%d\n", headerMark, ApiLevel, opts.Compress, len(entries))
		out = encIn
	}
	var err error
	if len(header) > 0 {
		_, err = io.WriteString(w, header)
	}
	if err == nil {
		_, err = io.Copy(w, out)
	}
	if err != nil {
		drain(out)
		return err
	}
	logger.Debug("table.save", "entries", len(entries), "format", opts.Format, "compress", opts.Compress)
	return nil
}

// Load reads a table written by Save in any of its formats.
func Load(r io.Reader) (*Table, error) {
	var (
		apiLevel, entryCount string
		compressed           bool
		aRdr                 *io.PipeReader
	)
	bRdr := bufio.NewReader(r)
	b, err := bRdr.Peek(5)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if string(b) == "-----" {
		var blck pem.Block
		aRdr, blck = pem.FromPem(bRdr)
		if blck.Type != pemType {
			drain(aRdr)
			return nil, fmt.Errorf("%w: PEM type %q", ErrFormat, blck.Type)
		}
		apiLevel = blck.Headers["ApiLevel"]
		entryCount = blck.Headers["Entries"]
		compressed = blck.Headers["Compression"] == "true"
	} else {
		line, err := bRdr.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		fields := strings.Split(strings.TrimSuffix(line, "\n"), "|")
		if len(fields) != 5 || fields[0] != headerMark {
			return nil, fmt.Errorf("%w: header %q", ErrFormat, line)
		}
		apiLevel, entryCount = fields[1], fields[4]
		compressed = fields[3] == "true"
		switch fields[2] {
		case "a":
			aRdr = ascii85.FromASCII85(lines.CombineLines(bRdr))
		case "b":
			aRdr = fromReader(bRdr)
		default:
			return nil, fmt.Errorf("%w: encoding %q", ErrFormat, fields[2])
		}
	}
	if level, _ := strconv.Atoi(apiLevel); level != ApiLevel {
		drain(aRdr)
		return nil, fmt.Errorf("%w: file %q, want %d", ErrApiLevel, apiLevel, ApiLevel)
	}
	if compressed {
		aRdr = flate.FromFlate(aRdr)
	}
	payload, err := io.ReadAll(aRdr)
	if err != nil {
		return nil, err
	}

	var (
		entries []Entry
		mh      codec.MsgpackHandle
	)
	dec := codec.NewDecoderBytes(payload, &mh)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if n, err := strconv.Atoi(entryCount); err != nil || n != len(entries) {
		return nil, fmt.Errorf("%w: header promises %s entries, found %d", ErrFormat, entryCount, len(entries))
	}
	logger.Debug("table.load", "entries", len(entries), "compress", compressed)
	return TableFromEntries(entries), nil
}
