// Package lrx parses and serializes LRX lyric files.
//
// LRX is a line-oriented superset of LRC. Besides timestamped lyric lines it
// declares the audio stems of a song (tracks), the vocal roles that color the
// lyrics (parts), and document-wide colors.
//
// # Format
//
//	[ar:Artist]
//	[ti:Title]
//	[color:#FFFFFF]
//
//	[track.inst:name=Instrumental]
//	[track.inst:source=instrumental.ogg]
//	[track.inst:volume=0.8]
//
//	[part.lead:name=Lead]
//	[part.lead:color=#FF6B6B]
//
//	[00:12.00][lead]First line
//	[00:15.50]Second line without a part
//
// Blank lines and lines starting with '#' are ignored.
//
// # Parsing
//
//	doc, err := lrx.Parse(content)
//	if err != nil {
//	    var perr *lrx.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Printf("line %d: %s\n", perr.Line, perr.Text)
//	    }
//	}
//
// A parse either succeeds for the whole document or fails; there is no
// partial result.
//
// # Serializing
//
//	content := doc.String()
//
// Output is canonical (sorted keys) and re-parses to a document that is
// Equal to the original. It is not byte-identical to the parsed input.
package lrx
