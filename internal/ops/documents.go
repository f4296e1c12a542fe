package ops

// Operation documents. Field selections mirror the platform schema; shared
// selections live in fragments appended to each document that uses them.

const productFieldsFragment = `
fragment ProductFields on Product {
  id
  brandId
  name
  description
  isActive
  images { url priority }
  price {
    kind
    flat
    orderTypes {
      orderType
      common
      points { pointId value }
    }
  }
  categoryIds
  pointIds
  tags { id name }
}`

const categoryFieldsFragment = `
fragment CategoryFields on Category {
  id
  brandId
  parentId
  name
  description
  isActive
  productsCount
  priority
}`

// ---------------------------------------------------------------------------
// Product
// ---------------------------------------------------------------------------

const productByIDDoc = `
query ProductById($brandId: ID!, $id: ID!) {
  product(brandId: $brandId, id: $id) {
    ...ProductFields
  }
}` + productFieldsFragment

const productsForMenuDoc = `
query ProductsForMenu($brandId: ID!, $pointId: ID!, $orderType: OrderType!) {
  productsForMenu(brandId: $brandId, pointId: $pointId, orderType: $orderType) {
    items { ...ProductFields }
    total
  }
}` + productFieldsFragment

const productsForAdminDoc = `
query ProductsForAdmin($brandId: ID!, $offset: Int!, $limit: Int!) {
  productsForAdmin(brandId: $brandId, offset: $offset, limit: $limit) {
    items { ...ProductFields }
    total
  }
}` + productFieldsFragment

const productCreateDoc = `
mutation ProductCreate($input: ProductCreateInput!) {
  productCreate(input: $input) {
    product { ...ProductFields }
    errors { field message }
  }
}` + productFieldsFragment

const productUpdateDoc = `
mutation ProductUpdate($input: ProductUpdateInput!) {
  productUpdate(input: $input) {
    product { ...ProductFields }
    errors { field message }
  }
}` + productFieldsFragment

const productDeleteDoc = `
mutation ProductDelete($brandId: ID!, $id: ID!) {
  productDelete(brandId: $brandId, id: $id) {
    deletedId
    errors { field message }
  }
}`

const productAssignCategoriesDoc = `
mutation ProductAssignCategories($brandId: ID!, $id: ID!, $categoryIds: [ID!]!) {
  productAssignCategories(brandId: $brandId, id: $id, categoryIds: $categoryIds) {
    product { ...ProductFields }
    errors { field message }
  }
}` + productFieldsFragment

// ---------------------------------------------------------------------------
// Category
// ---------------------------------------------------------------------------

const categoryByIDDoc = `
query CategoryById($brandId: ID!, $id: ID!) {
  category(brandId: $brandId, id: $id) {
    ...CategoryFields
  }
}` + categoryFieldsFragment

const categoriesForMenuDoc = `
query CategoriesForMenu($brandId: ID!, $pointId: ID!, $orderType: OrderType!) {
  categoriesForMenu(brandId: $brandId, pointId: $pointId, orderType: $orderType) {
    items { ...CategoryFields }
    total
  }
}` + categoryFieldsFragment

const categoriesForAdminDoc = `
query CategoriesForAdmin($brandId: ID!, $offset: Int!, $limit: Int!) {
  categoriesForAdmin(brandId: $brandId, offset: $offset, limit: $limit) {
    items { ...CategoryFields }
    total
  }
}` + categoryFieldsFragment

const categoryCreateDoc = `
mutation CategoryCreate($input: CategoryCreateInput!) {
  categoryCreate(input: $input) {
    category { ...CategoryFields }
    errors { field message }
  }
}` + categoryFieldsFragment

const categoryUpdateDoc = `
mutation CategoryUpdate($input: CategoryUpdateInput!) {
  categoryUpdate(input: $input) {
    category { ...CategoryFields }
    errors { field message }
  }
}` + categoryFieldsFragment

const categoryDeleteDoc = `
mutation CategoryDelete($brandId: ID!, $id: ID!) {
  categoryDelete(brandId: $brandId, id: $id) {
    deletedId
    errors { field message }
  }
}`

// ---------------------------------------------------------------------------
// Menu
// ---------------------------------------------------------------------------

const menuForPointDoc = `
query MenuForPoint($brandId: ID!, $pointId: ID!, $orderType: OrderType!) {
  menuForPoint(brandId: $brandId, pointId: $pointId, orderType: $orderType) {
    categories { ...CategoryFields }
    products { ...ProductFields }
  }
}` + categoryFieldsFragment + productFieldsFragment

// ---------------------------------------------------------------------------
// Brand / City / Point
// ---------------------------------------------------------------------------

const brandByIDDoc = `
query BrandById($id: ID!) {
  brand(id: $id) {
    id accountId name description isActive
  }
}`

const brandsForAccountDoc = `
query BrandsForAccount($accountId: ID!) {
  brandsForAccount(accountId: $accountId) {
    items { id accountId name description isActive }
    total
  }
}`

const brandUpdateDoc = `
mutation BrandUpdate($input: BrandUpdateInput!) {
  brandUpdate(input: $input) {
    brand { id accountId name description isActive }
    errors { field message }
  }
}`

const cityByIDDoc = `
query CityById($brandId: ID!, $id: ID!) {
  city(brandId: $brandId, id: $id) {
    id brandId name isActive
  }
}`

const citiesForBrandDoc = `
query CitiesForBrand($brandId: ID!) {
  citiesForBrand(brandId: $brandId) {
    items { id brandId name isActive }
    total
  }
}`

const pointByIDDoc = `
query PointById($brandId: ID!, $id: ID!) {
  point(brandId: $brandId, id: $id) {
    id brandId cityId name address isActive orderTypes
  }
}`

const pointsForBrandDoc = `
query PointsForBrand($brandId: ID!) {
  pointsForBrand(brandId: $brandId) {
    items { id brandId cityId name address isActive orderTypes }
    total
  }
}`

const pointsForCityDoc = `
query PointsForCity($brandId: ID!, $cityId: ID!) {
  pointsForCity(brandId: $brandId, cityId: $cityId) {
    items { id brandId cityId name address isActive orderTypes }
    total
  }
}`

// ---------------------------------------------------------------------------
// Order
// ---------------------------------------------------------------------------

const orderFieldsFragment = `
fragment OrderFields on Order {
  id
  brandId
  pointId
  accountId
  orderType
  status
  comment
  items { productId quantity price }
  total
  createdAt
}`

const orderByIDDoc = `
query OrderById($brandId: ID!, $id: ID!) {
  order(brandId: $brandId, id: $id) {
    ...OrderFields
  }
}` + orderFieldsFragment

const ordersForAccountDoc = `
query OrdersForAccount($brandId: ID!, $accountId: ID!) {
  ordersForAccount(brandId: $brandId, accountId: $accountId) {
    items { ...OrderFields }
    total
  }
}` + orderFieldsFragment

const orderCreateDoc = `
mutation OrderCreate($input: OrderCreateInput!) {
  orderCreate(input: $input) {
    order { ...OrderFields }
    errors { field message }
  }
}` + orderFieldsFragment

const orderCancelDoc = `
mutation OrderCancel($brandId: ID!, $id: ID!) {
  orderCancel(brandId: $brandId, id: $id) {
    order { ...OrderFields }
    errors { field message }
  }
}` + orderFieldsFragment

// ---------------------------------------------------------------------------
// User
// ---------------------------------------------------------------------------

const userByIDDoc = `
query UserById($accountId: ID!, $id: ID!) {
  user(accountId: $accountId, id: $id) {
    id accountId employeeId name phone email
  }
}`

const currentUserDoc = `
query CurrentUser($accountId: ID!) {
  currentUser(accountId: $accountId) {
    id accountId employeeId name phone email
  }
}`

const userUpdateDoc = `
mutation UserUpdate($input: UserUpdateInput!) {
  userUpdate(input: $input) {
    user { id accountId employeeId name phone email }
    errors { field message }
  }
}`
