package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantExt  string
		wantErr  error
	}{
		{name: "mp4 accepted", filename: "clip.mp4", size: 1024, wantExt: "mp4"},
		{name: "mov accepted", filename: "holiday.mov", size: 10 * 1024 * 1024, wantExt: "mov"},
		{name: "uppercase extension normalized", filename: "CLIP.MOV", size: 1024, wantExt: "mov"},
		{name: "3gp accepted", filename: "old-phone.3gp", size: 1024, wantExt: "3gp"},
		{name: "exactly at ceiling", filename: "big.mkv", size: MaxVideoSize, wantExt: "mkv"},
		{name: "over ceiling", filename: "huge.mp4", size: MaxVideoSize + 1, wantErr: ErrTooLarge},
		{name: "unsupported extension", filename: "document.pdf", size: 1024, wantErr: ErrUnsupportedFormat},
		{name: "no extension", filename: "video", size: 1024, wantErr: ErrUnsupportedFormat},
		{name: "empty file", filename: "clip.mp4", size: 0, wantErr: ErrEmptyFile},
		{name: "size checked before extension", filename: "huge.pdf", size: MaxVideoSize + 1, wantErr: ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := ValidateUpload(tt.filename, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestAllowedExtensionList(t *testing.T) {
	list := AllowedExtensionList()
	assert.Equal(t, []string{"3gp", "avi", "m4v", "mkv", "mov", "mp4", "webm"}, list)
}

func TestExt(t *testing.T) {
	assert.Equal(t, "mp4", Ext("a.mp4"))
	assert.Equal(t, "webm", Ext("dir/a.b.WEBM"))
	assert.Equal(t, "", Ext("noext"))
}
