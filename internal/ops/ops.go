// Package ops holds the named GraphQL operations the managers invoke. Each
// operation is a parameterized document; the managers depend only on its
// name, parameter shape, and payload shape, never on transport encoding.
package ops

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

type Operation struct {
	Name string
	Doc  string
}

// mustOp parses the document at init so a malformed operation fails fast
// instead of surfacing as a server-side syntax error at call time.
func mustOp(name, doc string) Operation {
	if _, err := parser.ParseQuery(&ast.Source{Name: name, Input: doc}); err != nil {
		panic(fmt.Sprintf("ops: invalid document %s: %v", name, err))
	}
	return Operation{Name: name, Doc: doc}
}

var (
	// Product
	ProductByID             = mustOp("ProductById", productByIDDoc)
	ProductsForMenu         = mustOp("ProductsForMenu", productsForMenuDoc)
	ProductsForAdmin        = mustOp("ProductsForAdmin", productsForAdminDoc)
	ProductCreate           = mustOp("ProductCreate", productCreateDoc)
	ProductUpdate           = mustOp("ProductUpdate", productUpdateDoc)
	ProductDelete           = mustOp("ProductDelete", productDeleteDoc)
	ProductAssignCategories = mustOp("ProductAssignCategories", productAssignCategoriesDoc)

	// Category
	CategoryByID       = mustOp("CategoryById", categoryByIDDoc)
	CategoriesForMenu  = mustOp("CategoriesForMenu", categoriesForMenuDoc)
	CategoriesForAdmin = mustOp("CategoriesForAdmin", categoriesForAdminDoc)
	CategoryCreate     = mustOp("CategoryCreate", categoryCreateDoc)
	CategoryUpdate     = mustOp("CategoryUpdate", categoryUpdateDoc)
	CategoryDelete     = mustOp("CategoryDelete", categoryDeleteDoc)

	// Menu
	MenuForPoint = mustOp("MenuForPoint", menuForPointDoc)

	// Brand
	BrandByID        = mustOp("BrandById", brandByIDDoc)
	BrandsForAccount = mustOp("BrandsForAccount", brandsForAccountDoc)
	BrandUpdate      = mustOp("BrandUpdate", brandUpdateDoc)

	// City / Point
	CityByID       = mustOp("CityById", cityByIDDoc)
	CitiesForBrand = mustOp("CitiesForBrand", citiesForBrandDoc)
	PointByID      = mustOp("PointById", pointByIDDoc)
	PointsForBrand = mustOp("PointsForBrand", pointsForBrandDoc)
	PointsForCity  = mustOp("PointsForCity", pointsForCityDoc)

	// Order
	OrderByID        = mustOp("OrderById", orderByIDDoc)
	OrdersForAccount = mustOp("OrdersForAccount", ordersForAccountDoc)
	OrderCreate      = mustOp("OrderCreate", orderCreateDoc)
	OrderCancel      = mustOp("OrderCancel", orderCancelDoc)

	// User
	UserByID    = mustOp("UserById", userByIDDoc)
	CurrentUser = mustOp("CurrentUser", currentUserDoc)
	UserUpdate  = mustOp("UserUpdate", userUpdateDoc)
)
