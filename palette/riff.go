package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// palVersion is stored as the bytes 0x00 0x03.
const palVersion = 3

// ReadFrom reads every palette of a RIFF PAL stream.
func ReadFrom(r io.Reader) ([]color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	return readPalettes(rd, string(formType[:]))
}

func readPalettes(r *riff.Reader, ident string) ([]color.Palette, error) {
	var res []color.Palette

	for {
		id, size, data, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return res, fmt.Errorf("could not read chunk %q#%d: %w", ident, len(res), err)
		}

		switch id {
		case riff.LIST:
			listType, list, lerr := riff.NewListReader(size, data)
			if lerr != nil {
				return res, fmt.Errorf("could not read list from chunk %q#%d: %w", ident, len(res), lerr)
			} else if listType != palType {
				return res, fmt.Errorf("chunk %q#%d unsupported type: %s", ident, len(res), string(listType[:]))
			}

			listRes, lerr := readPalettes(list, fmt.Sprintf("%s%d.%s", ident, len(res), listType[:]))
			res = append(res, listRes...)
			if lerr != nil {
				return res, lerr
			}
		case dataType:
			pal, err := readPalette(data, fmt.Sprintf("%s%d", ident, len(res)))
			if err != nil {
				return res, err
			}
			res = append(res, pal)
		default:
			return res, fmt.Errorf("unsupported chunk type in %q#%d: %s", ident, len(res), id)
		}
	}

	return res, nil
}

func readPalette(r io.Reader, ident string) (color.Palette, error) {
	var hdr struct {
		Version uint16
		Count   uint16
	}
	if err := binary.Read(r, binary.BigEndian, &hdr.Version); err != nil {
		return nil, fmt.Errorf("could not read version from chunk %s: %w", ident, err)
	} else if hdr.Version != palVersion {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %d", ident, hdr.Version)
	}

	if err := binary.Read(r, binary.LittleEndian, &hdr.Count); err != nil {
		return nil, fmt.Errorf("could not read number of entries from chunk %s: %w", ident, err)
	}

	res := make(color.Palette, hdr.Count)
	var entry [4]byte
	for i := range int(hdr.Count) {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return res[:i], fmt.Errorf("could not read color %d/%d from chunk %s: %w", i, hdr.Count, ident, err)
		}

		res[i] = color.RGBA{
			R: entry[0],
			G: entry[1],
			B: entry[2],
			A: 0xFF,
		}
	}

	return res, nil
}

// WriteTo writes pals as one RIFF PAL stream with a data chunk per palette
// and reports the number of bytes written.
func WriteTo(w io.Writer, pals []color.Palette) (int64, error) {
	size := 4
	for _, pal := range pals {
		size += 4 + 4 + 4 + len(pal)*4 // chunk id + chunk size + palVersion + palNumEntries + 4 bytes/color
	}

	hdr := make([]byte, 0, 12)
	hdr = append(hdr, riffType[:]...)
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(size))
	hdr = append(hdr, palType[:]...)
	if err := writeBytes(w, hdr); err != nil {
		return 0, fmt.Errorf("could not write RIFF header: %w", err)
	}

	count := int64(len(hdr))
	for i, pal := range pals {
		n, err := writePalette(w, pal)
		count += n
		if err != nil {
			return count, fmt.Errorf("could not write chunk %d: %w", i, err)
		}
	}

	return count, nil
}

func writePalette(w io.Writer, pal color.Palette) (int64, error) {
	if len(pal) > 0xFFFF {
		return 0, fmt.Errorf("too many colors: %d", len(pal))
	}

	buf := make([]byte, 0, 12+len(pal)*4)
	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+len(pal)*4))
	buf = binary.BigEndian.AppendUint16(buf, palVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(pal)))
	for _, col := range pal {
		c := color.NRGBAModel.Convert(col).(color.NRGBA)
		buf = append(buf, c.R, c.G, c.B, 0x00)
	}

	if err := writeBytes(w, buf); err != nil {
		return 0, err
	}
	return int64(len(buf)), nil
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}

	return nil
}
