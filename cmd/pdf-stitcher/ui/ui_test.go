package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/spherical/pdf-stitcher/internal/domain"
)

func TestNewLocalizer(t *testing.T) {
	tests := []struct {
		lang string
		want language.Tag
	}{
		{"en", language.English},
		{"zh", language.Chinese},
		{"zh-CN", language.Chinese},
		{" zh-Hans ", language.Chinese},
		{"fr", language.English},
		{"", language.English},
		{"???", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.want, NewLocalizer(tt.lang).Tag())
		})
	}
}

func TestEveryStatusCodeIsTranslated(t *testing.T) {
	codes := []domain.MessageCode{
		domain.MsgLoading, domain.MsgRendering, domain.MsgStitching, domain.MsgPackaging,
		domain.MsgDone, domain.MsgErrorLoad, domain.MsgErrorProcess, domain.MsgErrorPackage,
	}
	for tag, msgs := range translations {
		for _, code := range codes {
			assert.Contains(t, msgs, string(code), "%s lacks %s", tag, code)
		}
		assert.Len(t, msgs, len(translations[language.English]), "%s", tag)
	}
}

func TestLocalizerStatus(t *testing.T) {
	en := NewLocalizer("en")
	zh := NewLocalizer("zh")

	rendering := domain.Status{Phase: domain.PhaseRendering, Code: domain.MsgRendering, Group: 2, Groups: 5}
	assert.Equal(t, "Rendering part 2 of 5...", en.Status(rendering))
	assert.Equal(t, "正在渲染第 2/5 部分...", zh.Status(rendering))

	assert.Equal(t, "Loading PDF...", en.Status(domain.Status{Phase: domain.PhaseLoading, Code: domain.MsgLoading}))
	assert.Equal(t, "打包中...", zh.Status(domain.Status{Phase: domain.PhasePackaging, Code: domain.MsgPackaging}))

	failed := domain.Status{Phase: domain.PhaseError, Code: domain.MsgErrorPackage, Message: "disk full"}
	assert.Equal(t, "Failed to create ZIP file. (disk full)", en.Status(failed))

	assert.Equal(t, "raw", en.Status(domain.Status{Message: "raw"}))
}

func TestLocalizerFormats(t *testing.T) {
	assert.Equal(t, "Will generate 3 images, approx 4 pages each.", NewLocalizer("en").T(KeyPlanSummary, 3, 4))
	assert.Equal(t, "将生成 3 张图片，每张约 4 页", NewLocalizer("zh").T(KeyPlanSummary, 3, 4))
	assert.Equal(t, "第 2 部分", NewLocalizer("zh").T(KeyPart, 2))
}

func TestStatusViewReportsErrors(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	view := NewStatusView(&buf, NewLocalizer("en"))
	view.Handle(domain.Status{Phase: domain.PhaseRendering, Code: domain.MsgRendering, Group: 1, Groups: 2})
	view.Handle(domain.Status{Phase: domain.PhaseStitching, Progress: 25, Code: domain.MsgStitching, Group: 1, Groups: 2})
	view.Handle(domain.Status{Phase: domain.PhaseError, Code: domain.MsgErrorProcess, Message: "bad page"})

	assert.Contains(t, buf.String(), "Stitching part 1 of 2...")
	assert.Contains(t, buf.String(), "✗ Failed to process PDF. (bad page)")
	assert.Nil(t, view.bar)
	assert.True(t, view.Failed())
}

func TestStatusViewNotFailedOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	view := NewStatusView(&buf, NewLocalizer("en"))
	view.Handle(domain.Status{Phase: domain.PhaseRendering, Code: domain.MsgRendering, Group: 1, Groups: 1})
	view.Handle(domain.Status{Phase: domain.PhaseDone, Progress: 100, Code: domain.MsgDone, Groups: 1})
	assert.False(t, view.Failed())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"Part", "Pages"}, [][]string{{"1", "1-4"}, {"2", "5-7"}})
	assert.Equal(t, "Part  Pages\n----  -----\n1     1-4\n2     5-7\n", buf.String())
}
