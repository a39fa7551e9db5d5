package shipment

import (
	"fmt"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
)

// PackageType is the handling unit chosen for a line.
type PackageType string

const (
	PackageSkid   PackageType = "SKID"
	PackageBundle PackageType = "BUNDLE"
)

// DocumentType names a shipping document.
type DocumentType string

const (
	DocumentBOL         DocumentType = "BOL"
	DocumentPackingList DocumentType = "PACKING_LIST"
)

// DocumentStatus is the generation state of a document.
type DocumentStatus string

const (
	DocumentPending   DocumentStatus = "PENDING"
	DocumentGenerated DocumentStatus = "GENERATED"
)

// DefaultSkidWeightThreshold is the line weight in pounds from which a line
// ships on a skid instead of as a bundle.
const DefaultSkidWeightThreshold = 2000.0

// Line is the immutable snapshot of quantity moved for one order line.
type Line struct {
	LineID     kernel.UUID
	LineNumber int
	Qty        int
	Weight     float64
}

// Package is one handling unit, synthesized per shipment line.
type Package struct {
	LineID kernel.UUID
	Type   PackageType
	Qty    int
	Weight float64
}

// DropTag is the label printed for one shipment line.
type DropTag struct {
	LineID kernel.UUID
	Number string
}

// Document is a shipping document attached to the split.
type Document struct {
	Type   DocumentType
	Status DocumentStatus
}

// ChoosePackageType returns SKID when weight reaches threshold, BUNDLE otherwise.
func ChoosePackageType(weight, threshold float64) PackageType {
	if weight >= threshold {
		return PackageSkid
	}
	return PackageBundle
}

// DropTagNumber formats "<orderNumber>-S<splitIndex>-L<lineNumber>".
func DropTagNumber(orderNumber string, splitIndex, lineNumber int) string {
	return fmt.Sprintf("%s-S%d-L%d", orderNumber, splitIndex, lineNumber)
}

// seedDocuments returns the document set every new split starts with.
func seedDocuments() []Document {
	return []Document{
		{Type: DocumentBOL, Status: DocumentPending},
		{Type: DocumentPackingList, Status: DocumentPending},
	}
}
