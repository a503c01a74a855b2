package epub

import (
	"errors"
	"testing"
)

func TestLocatePackage(t *testing.T) {
	tests := []struct {
		name    string
		entries []entry
		want    string
		wantErr error
	}{
		{
			name:    "container.xml",
			entries: []entry{{"META-INF/container.xml", testContainer}, {"OEBPS/content.opf", "<package/>"}},
			want:    "OEBPS/content.opf",
		},
		{
			name:    "lowercase META-INF",
			entries: []entry{{"meta-inf/container.xml", testContainer}},
			want:    "OEBPS/content.opf",
		},
		{
			name:    "BOM",
			entries: []entry{{"META-INF/container.xml", "\xEF\xBB\xBF" + testContainer}},
			want:    "OEBPS/content.opf",
		},
		{
			name:    "no container.xml falls back to .opf scan",
			entries: []entry{{"mimetype", expectedMimetype}, {"Book/Package.OPF", "<package/>"}},
			want:    "Book/Package.OPF",
		},
		{
			name:    "nothing to find",
			entries: []entry{{"mimetype", expectedMimetype}},
			wantErr: ErrInvalidEPub,
		},
		{
			name: "rootfile by media type wins",
			entries: []entry{{"META-INF/container.xml", `<container><rootfiles>
<rootfile full-path="other.pdf" media-type="application/pdf"/>
<rootfile full-path="pkg.opf" media-type="application/oebps-package+xml"/>
</rootfiles></container>`}},
			want: "pkg.opf",
		},
		{
			name: "first non-empty rootfile otherwise",
			entries: []entry{{"META-INF/container.xml", `<container><rootfiles>
<rootfile full-path="  " media-type=""/>
<rootfile full-path="a.opf" media-type=""/>
</rootfiles></container>`}},
			want: "a.opf",
		},
		{
			name:    "no rootfiles",
			entries: []entry{{"META-INF/container.xml", `<container><rootfiles/></container>`}},
			wantErr: ErrInvalidEPub,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locatePackage(zipReader(t, tt.entries...))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("locatePackage() error = %v; want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("locatePackage() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("locatePackage() = %q; want %q", got, tt.want)
			}
		})
	}
}
