package viewer

// Class names and ids of the report markup contract. The report package
// produces documents with these; Load binds controllers by them.
const (
	ReportIDPrefix = "r-"

	ClassReport      = "test-report"
	ClassToggle      = "report-toggle"
	ClassTab         = "report-tab"
	ClassFileHeader  = "report-file-header"
	ClassBody        = "report-body"
	ClassFile        = "report-file"
	ClassKindTabs    = "file-diff-tabs"
	ClassKindTab     = "file-diff-tab"
	ClassFileDiff    = "file-diff"
	ClassSidebarList = "sidebar-list"
	ClassSidebar     = "sidebar-entry"

	ClassImageDiff    = "image-diff"
	ClassImageSplit   = "image-split"
	ClassViewMode     = "image-view-mode"
	ClassAntialiasing = "antialiasing"
	ClassZoom         = "image-zoom"
	ClassZoomMinus    = "image-zoom-minus"
	ClassZoomPlus     = "image-zoom-plus"
	ClassAlignX       = "image-align-x"
	ClassAlignY       = "image-align-y"
	ClassAlignXGroup  = "image-align-x-control"
	ClassAlignYGroup  = "image-align-y-control"
	ClassBlend        = "image-blend"
	ClassBlendGroup   = "image-blend-control"

	ClassGlobalFormat    = "global-diff-format"
	ClassGlobalImageMode = "global-image-view-mode"
	ClassFilterFormat    = "filter-format"
	IDFilterSearch       = "filter-search"
	ImageDiffIDPrefix    = "image-diff-"
)
