package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// buildMIME renders the message as an RFC 2822 multipart/mixed payload
// ready for base64url encoding.
func buildMIME(msg OutgoingMessage, fromAddr string) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	from := fromAddr
	if msg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", msg.FromName, fromAddr)
	}

	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=UTF-8")
	part, err := writer.CreatePart(textHeader)
	if err != nil {
		return nil, eris.Wrap(err, "gmail: create text part")
	}
	if _, err := part.Write([]byte(msg.Body)); err != nil {
		return nil, eris.Wrap(err, "gmail: write text part")
	}

	if msg.AttachmentPath != "" {
		if err := attachPDF(writer, msg.AttachmentPath); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, eris.Wrap(err, "gmail: close multipart writer")
	}
	return buf.Bytes(), nil
}

func attachPDF(writer *multipart.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "gmail: read attachment %s", path)
	}

	name := filepath.Base(path)
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", fmt.Sprintf("application/pdf; name=%q", name))
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	header.Set("Content-Transfer-Encoding", "base64")

	part, err := writer.CreatePart(header)
	if err != nil {
		return eris.Wrap(err, "gmail: create attachment part")
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	// Wrap base64 lines at 76 characters per RFC 2045.
	for len(encoded) > 0 {
		n := min(76, len(encoded))
		if _, err := fmt.Fprintf(part, "%s\r\n", encoded[:n]); err != nil {
			return eris.Wrap(err, "gmail: write attachment part")
		}
		encoded = encoded[n:]
	}
	return nil
}
