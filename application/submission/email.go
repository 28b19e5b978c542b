package submission

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/softglass/calculator-backend/model"
	"github.com/softglass/calculator-backend/thirdparty/mailer"
	"github.com/softglass/calculator-backend/utils/logger"
	"go.uber.org/zap"
)

const (
	photoContentType   = "image/jpeg"
	defaultContentType = "application/octet-stream"
)

const emailLayout = `<html>
<body style="font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto;">
    <h2 style="color: #2563eb;">Новая заявка #{{.OrderID}} на расчет ПВХ окон</h2>

    <div style="background: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">
        <p style="margin: 5px 0;"><strong>Количество окон:</strong> {{len .Windows}} шт</p>
        <p style="margin: 5px 0;"><strong>Общая стоимость:</strong> {{.Total}} ₽</p>
        <p style="margin: 5px 0;"><strong>Загружено фотографий:</strong> {{.Photos}} шт</p>
    </div>
{{if .Comment}}
    <div style="background: #e0f2fe; padding: 15px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #2563eb;">
        <h3 style="color: #1f2937; margin-top: 0;">Комментарий клиента:</h3>
        <p style="margin: 0; white-space: pre-wrap;">{{.Comment}}</p>
    </div>
{{end}}
    <h3 style="color: #1f2937;">Детали расчета:</h3>
{{range $i, $w := .Windows}}
    <div style="border: 1px solid #e5e7eb; padding: 15px; margin: 10px 0; border-radius: 8px;">
        <h4 style="color: #2563eb; margin-top: 0;">Окно {{inc $i}}</h4>
        <p><strong>Размеры:</strong> {{$w.Top}}×{{$w.Right}} мм</p>
        <p><strong>Площадь:</strong> {{$w.Area}} м²</p>
        <p><strong>Стоимость:</strong> {{$w.Price}} ₽</p>
    </div>
{{end}}
</body>
</html>
`

var emailTemplate = template.Must(template.New("submission").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(emailLayout))

type emailView struct {
	OrderID uint64
	Total   string
	Photos  int
	Comment string
	Windows []windowView
}

type windowView struct {
	Top   string
	Right string
	Area  string
	Price string
}

func renderEmail(orderID uint64, req *model.SubmissionRequest) (string, error) {
	view := emailView{
		OrderID: orderID,
		Total:   displayTotal(req.Total),
		Photos:  len(req.Images),
		Comment: req.Comment,
		Windows: make([]windowView, 0, len(req.Windows)),
	}
	for _, raw := range req.Windows {
		var w model.WindowSummary
		// a window that is not an object still gets an empty block
		_ = json.Unmarshal(raw, &w)
		view.Windows = append(view.Windows, windowView{
			Top:   display(w.Top),
			Right: display(w.Right),
			Area:  strconv.FormatFloat(number(w.Area), 'f', 2, 64),
			Price: displayOr(w.Price, "0"),
		})
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func displayTotal(n json.Number) string {
	if n == "" {
		return "0"
	}
	return n.String()
}

func display(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func displayOr(v any, fallback string) string {
	if v == nil {
		return fallback
	}
	return display(v)
}

func number(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err == nil {
			return f
		}
	}
	return 0
}

// collectAttachments decodes photos and documents. Entries that fail to
// decode are logged and left out.
func collectAttachments(req *model.SubmissionRequest) []mailer.Attachment {
	attachments := make([]mailer.Attachment, 0, len(req.Images)+len(req.Files))

	for i, img := range req.Images {
		data, err := decodePayload(img)
		if err != nil {
			logger.Warn("[Submission] skip undecodable image", zap.Int("index", i), zap.String("error", err.Error()))
			continue
		}
		attachments = append(attachments, mailer.Attachment{
			Filename:    fmt.Sprintf("photo_%d.jpg", i+1),
			ContentType: photoContentType,
			Data:        data,
		})
	}

	for i, f := range req.Files {
		data, err := decodePayload(f.Data)
		if err != nil {
			logger.Warn("[Submission] skip undecodable file", zap.Int("index", i), zap.String("error", err.Error()))
			continue
		}
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("document_%d", i+1)
		}
		contentType := f.Type
		if contentType == "" {
			contentType = defaultContentType
		}
		attachments = append(attachments, mailer.Attachment{
			Filename:    name,
			ContentType: contentType,
			Data:        data,
		})
	}

	return attachments
}

// decodePayload accepts a data URL ("data:image/png;base64,<payload>") or bare
// base64.
func decodePayload(s string) ([]byte, error) {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[i+1:]
	}
	if s == "" {
		return nil, fmt.Errorf("empty payload")
	}
	return base64.StdEncoding.DecodeString(s)
}
