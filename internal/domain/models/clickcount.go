// internal/domain/models/clickcount.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClickCountSchemaVersion tags the nested per-user document shape. Earlier
// revisions of this system stored one flat document per (user, category);
// version 2 is the canonical shape and the only one this codebase writes
// or reads.
const ClickCountSchemaVersion = 2

// ClickCount accumulates per-user category view counts, one document per
// user. Within a document there is at most one entry per category string,
// and within a category at most one entry per subcategory string. Counts
// only ever grow.
//
// BSON names match the external scorer's read path (userId, categories,
// categoryCount, subCategories, subCategoryCount).
type ClickCount struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"userId" json:"userId"`
	SchemaVersion int                `bson:"schema_version" json:"-"`
	Categories    []CategoryCount    `bson:"categories" json:"categories"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CategoryCount is the per-category tally with its subcategory breakdown.
type CategoryCount struct {
	Category      string             `bson:"category" json:"category"`
	CategoryCount int                `bson:"categoryCount" json:"categoryCount"`
	SubCategories []SubCategoryCount `bson:"subCategories" json:"subCategories"`
}

// SubCategoryCount is the per-subcategory tally within one category.
type SubCategoryCount struct {
	SubCategory      string `bson:"subCategory" json:"subCategory"`
	SubCategoryCount int    `bson:"subCategoryCount" json:"subCategoryCount"`
}
