package app

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/catalog/internal/sec"
	"github.com/stolasapp/catalog/internal/storage"
	"github.com/stolasapp/catalog/internal/storage/db"
)

// Response messages.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgFieldsRequired     = "All fields are required"
	msgInvalidBody        = "Invalid request body"
	msgProductNotFound    = "Product not found"
	msgProductUpdated     = "Product updated successfully"
	msgProductDeleted     = "Product deleted successfully"
)

type handler struct {
	store storage.Store
	auth  *sec.Authenticator
}

func (h handler) register(e *echo.Echo) {
	e.GET("/healthz", h.health)
	e.POST("/login", h.login)

	authn := h.auth.Middleware()
	products := e.Group("/products")
	products.GET("", h.listProducts)
	products.GET("/:id", h.getProduct)
	products.POST("", h.createProduct, authn)
	products.PUT("/:id", h.updateProduct, authn)
	products.DELETE("/:id", h.deleteProduct, authn)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// productRequest is the body of create and update requests. Zero values are
// treated as missing, so a price of 0 is rejected.
type productRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"required"`
	ImageURL    string  `json:"imageUrl"    validate:"required"`
}

func (r productRequest) fields() db.ProductFields {
	return db.ProductFields{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h handler) health(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody).SetInternal(err)
	}
	token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

func (h handler) listProducts(c echo.Context) error {
	products, err := h.store.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h handler) getProduct(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.store.GetProduct(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h handler) createProduct(c echo.Context) error {
	req, err := bindProduct(c)
	if err != nil {
		return err
	}
	product, err := h.store.CreateProduct(c.Request().Context(), req.fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

func (h handler) updateProduct(c echo.Context) error {
	req, err := bindProduct(c)
	if err != nil {
		return err
	}
	id, err := productID(c)
	if err != nil {
		return err
	}
	n, err := h.store.UpdateProduct(c.Request().Context(), id, req.fields())
	if err != nil {
		return err
	}
	if n == 0 {
		return toHTTPError(storage.ErrNotFound)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgProductUpdated})
}

func (h handler) deleteProduct(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	n, err := h.store.DeleteProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return toHTTPError(storage.ErrNotFound)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgProductDeleted})
}

// productID parses the :id path parameter. An id that is not an integer
// cannot match any row, so it is reported as not found.
func productID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, msgProductNotFound).SetInternal(err)
	}
	return id, nil
}

func bindProduct(c echo.Context) (productRequest, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody).SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, msgFieldsRequired).SetInternal(err)
	}
	return req, nil
}
