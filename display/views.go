package display

import (
	"time"

	"github.com/sorenmh/infrastructure-shared/package-browser/models"
)

// PackageView decorates a package with its display strings
func (f *Formatter) PackageView(pkg models.Package, now time.Time) models.PackageView {
	return models.PackageView{
		Package:          pkg,
		FileSizeDisplay:  FormatFileSize(pkg.FileSize),
		CreatedOnDisplay: f.FormatDate(pkg.CreatedOn),
		Expiry:           ClassifyExpiry(pkg.ExpiryDate, now).Model(),
	}
}

// PackageViews decorates a page of packages, keeping the API's order. The result is
// never nil.
func (f *Formatter) PackageViews(pkgs []models.Package, now time.Time) []models.PackageView {
	views := make([]models.PackageView, 0, len(pkgs))
	for _, pkg := range pkgs {
		views = append(views, f.PackageView(pkg, now))
	}
	return views
}
