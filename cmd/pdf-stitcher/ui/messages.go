package ui

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spherical/pdf-stitcher/internal/domain"
)

// Message keys used by the CLI beyond the pipeline's status codes.
const (
	KeyPlanSummary = "plan.summary"
	KeyTotalPages  = "info.pages"
	KeyPart        = "label.part"
	KeySaved       = "status.saved"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		string(domain.MsgLoading):      "Loading PDF...",
		string(domain.MsgRendering):    "Rendering part %d of %d...",
		string(domain.MsgStitching):    "Stitching part %d of %d...",
		string(domain.MsgPackaging):    "Creating ZIP file...",
		string(domain.MsgDone):         "Done",
		string(domain.MsgErrorLoad):    "Failed to load PDF. Please try another file.",
		string(domain.MsgErrorProcess): "Failed to process PDF.",
		string(domain.MsgErrorPackage): "Failed to create ZIP file.",
		KeyPlanSummary:                 "Will generate %d images, approx %d pages each.",
		KeyTotalPages:                  "Total pages: %d",
		KeyPart:                        "Part %d",
		KeySaved:                       "Saved %s",
	},
	language.Chinese: {
		string(domain.MsgLoading):      "加载 PDF 中...",
		string(domain.MsgRendering):    "正在渲染第 %d/%d 部分...",
		string(domain.MsgStitching):    "正在拼接第 %d/%d 部分...",
		string(domain.MsgPackaging):    "打包中...",
		string(domain.MsgDone):         "完成",
		string(domain.MsgErrorLoad):    "加载 PDF 失败，请重试",
		string(domain.MsgErrorProcess): "处理 PDF 失败",
		string(domain.MsgErrorPackage): "创建压缩包失败",
		KeyPlanSummary:                 "将生成 %d 张图片，每张约 %d 页",
		KeyTotalPages:                  "共 %d 页",
		KeyPart:                        "第 %d 部分",
		KeySaved:                       "已保存 %s",
	},
}

func init() {
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}

// Localizer resolves message keys to text in one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer returns a Localizer for lang. Anything that is not Chinese
// falls back to English.
func NewLocalizer(lang string) *Localizer {
	tag := language.English
	if t, err := language.Parse(strings.TrimSpace(lang)); err == nil {
		if base, _ := t.Base(); base.String() == "zh" {
			tag = language.Chinese
		}
	}
	return &Localizer{tag: tag, printer: message.NewPrinter(tag)}
}

// Tag returns the resolved language
func (l *Localizer) Tag() language.Tag { return l.tag }

// T formats the message stored under key.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Status renders a status update. Error statuses append the underlying
// message when there is one.
func (l *Localizer) Status(s domain.Status) string {
	switch s.Code {
	case domain.MsgRendering, domain.MsgStitching:
		return l.T(string(s.Code), s.Group, s.Groups)
	case "":
		return s.Message
	}

	text := l.T(string(s.Code))
	if s.Phase == domain.PhaseError && s.Message != "" {
		text += " (" + s.Message + ")"
	}
	return text
}
