// Package http exposes the fulfillment use cases over a REST API. The buyer
// identity comes from the X-Buyer-ID header and the acting role of lifecycle
// changes from X-Acting-Role; a real gateway would fill both from auth.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	buyerIDHeader    = "X-Buyer-ID"
	actingRoleHeader = "X-Acting-Role"
)

// Server wires the HTTP routes to the command and query handlers.
type Server struct {
	addCartItemHandler         commands.AddCartItemCommandHandler
	setCartItemQuantityHandler commands.SetCartItemQuantityCommandHandler
	removeCartItemHandler      commands.RemoveCartItemCommandHandler
	checkoutHandler            commands.CheckoutCommandHandler
	changeOrderStatusHandler   commands.ChangeOrderStatusCommandHandler
	markPaymentHandler         commands.MarkPaymentCommandHandler
	ensureInvoiceHandler       commands.EnsureInvoiceCommandHandler
	sendInvoiceEmailHandler    commands.SendInvoiceEmailCommandHandler

	getOrderHandler           queries.GetOrderQueryHandler
	getActiveOrdersHandler    queries.GetActiveOrdersQueryHandler
	getInvoiceArtifactHandler queries.GetInvoiceArtifactQueryHandler
}

// NewServer creates the HTTP server over the given use case handlers.
func NewServer(
	addCartItemHandler commands.AddCartItemCommandHandler,
	setCartItemQuantityHandler commands.SetCartItemQuantityCommandHandler,
	removeCartItemHandler commands.RemoveCartItemCommandHandler,
	checkoutHandler commands.CheckoutCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	markPaymentHandler commands.MarkPaymentCommandHandler,
	ensureInvoiceHandler commands.EnsureInvoiceCommandHandler,
	sendInvoiceEmailHandler commands.SendInvoiceEmailCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getInvoiceArtifactHandler queries.GetInvoiceArtifactQueryHandler,
) *Server {
	return &Server{
		addCartItemHandler:         addCartItemHandler,
		setCartItemQuantityHandler: setCartItemQuantityHandler,
		removeCartItemHandler:      removeCartItemHandler,
		checkoutHandler:            checkoutHandler,
		changeOrderStatusHandler:   changeOrderStatusHandler,
		markPaymentHandler:         markPaymentHandler,
		ensureInvoiceHandler:       ensureInvoiceHandler,
		sendInvoiceEmailHandler:    sendInvoiceEmailHandler,
		getOrderHandler:            getOrderHandler,
		getActiveOrdersHandler:     getActiveOrdersHandler,
		getInvoiceArtifactHandler:  getInvoiceArtifactHandler,
	}
}

// RegisterRoutes mounts every route under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/carts/:supplierID/items", s.AddCartItem)
	v1.PUT("/carts/:supplierID/items/:productID", s.SetCartItemQuantity)
	v1.DELETE("/carts/:supplierID/items/:productID", s.RemoveCartItem)
	v1.POST("/carts/:supplierID/checkout", s.Checkout)

	v1.GET("/orders", s.GetActiveOrders)
	v1.GET("/orders/:orderID", s.GetOrder)
	v1.POST("/orders/:orderID/status", s.ChangeOrderStatus)
	v1.POST("/orders/:orderID/payment", s.MarkPayment)
	v1.POST("/orders/:orderID/invoice", s.EnsureInvoice)

	v1.GET("/invoices/:invoiceID/artifact", s.GetInvoiceArtifact)
	v1.POST("/invoices/:invoiceID/email", s.SendInvoiceEmail)
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorBody{Code: http.StatusBadRequest, Message: message})
}

// mapError translates core errors into HTTP statuses: missing aggregates are
// 404, business rule rejections 422, state machine and concurrency conflicts
// 409, everything unexpected 500.
func mapError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrUnauthorizedTransition),
		errors.Is(err, order.ErrDispatchAlreadyAssigned),
		errors.Is(err, order.ErrInvoiceAlreadyAssigned),
		errors.Is(err, invoice.ErrPaymentNotCompleted),
		errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusConflict
	case errors.Is(err, cart.ErrQuantityExceedsStock),
		errors.Is(err, cart.ErrQuantityBelowMinimum),
		errors.Is(err, services.ErrBelowMinimumOrder),
		errors.Is(err, commands.ErrCartIsEmpty),
		errors.Is(err, commands.ErrDeliveryDateTooSoon),
		errors.Is(err, commands.ErrDeliveryDayUnavailable):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, errorBody{Code: status, Message: err.Error()})
}

func buyerID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(buyerIDHeader))
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddCartItem handles POST /api/v1/carts/{supplierID}/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	buyer, err := buyerID(ctx)
	if err != nil {
		return badRequest(ctx, "missing or invalid "+buyerIDHeader+" header")
	}
	supplier, err := pathUUID(ctx, "supplierID")
	if err != nil {
		return badRequest(ctx, "invalid supplier ID")
	}

	var body cartItemRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	product, err := kernel.UUIDFromString(body.ProductID)
	if err != nil {
		return badRequest(ctx, "invalid product ID")
	}

	cmd, err := commands.NewAddCartItemCommand(buyer, supplier, product, body.Quantity)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := s.addCartItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetCartItemQuantity handles PUT /api/v1/carts/{supplierID}/items/{productID}.
func (s *Server) SetCartItemQuantity(ctx echo.Context) error {
	buyer, err := buyerID(ctx)
	if err != nil {
		return badRequest(ctx, "missing or invalid "+buyerIDHeader+" header")
	}
	supplier, err := pathUUID(ctx, "supplierID")
	if err != nil {
		return badRequest(ctx, "invalid supplier ID")
	}
	product, err := pathUUID(ctx, "productID")
	if err != nil {
		return badRequest(ctx, "invalid product ID")
	}

	var body cartQuantityRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSetCartItemQuantityCommand(buyer, supplier, product, body.Quantity)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := s.setCartItemQuantityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartItem handles DELETE /api/v1/carts/{supplierID}/items/{productID}.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	buyer, err := buyerID(ctx)
	if err != nil {
		return badRequest(ctx, "missing or invalid "+buyerIDHeader+" header")
	}
	supplier, err := pathUUID(ctx, "supplierID")
	if err != nil {
		return badRequest(ctx, "invalid supplier ID")
	}
	product, err := pathUUID(ctx, "productID")
	if err != nil {
		return badRequest(ctx, "invalid product ID")
	}

	cmd, err := commands.NewRemoveCartItemCommand(buyer, supplier, product)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := s.removeCartItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type checkoutRequest struct {
	Address       string `json:"address"`
	ContactName   string `json:"contact_name"`
	ContactPhone  string `json:"contact_phone"`
	DeliveryDate  string `json:"delivery_date"`
	TimeSlot      string `json:"time_slot"`
	Urgency       string `json:"urgency"`
	Instructions  string `json:"instructions"`
	PaymentMethod string `json:"payment_method"`
}

type checkoutResponse struct {
	OrderID string `json:"order_id"`
}

// Checkout handles POST /api/v1/carts/{supplierID}/checkout.
func (s *Server) Checkout(ctx echo.Context) error {
	buyer, err := buyerID(ctx)
	if err != nil {
		return badRequest(ctx, "missing or invalid "+buyerIDHeader+" header")
	}
	supplier, err := pathUUID(ctx, "supplierID")
	if err != nil {
		return badRequest(ctx, "invalid supplier ID")
	}

	var body checkoutRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	deliveryDate, err := time.Parse("2006-01-02", body.DeliveryDate)
	if err != nil {
		return badRequest(ctx, "delivery_date must be formatted YYYY-MM-DD")
	}
	urgency := kernel.UrgencyNormal
	if body.Urgency != "" {
		urgency, err = kernel.UrgencyFromString(body.Urgency)
		if err != nil {
			return badRequest(ctx, "urgency must be normal, urgent or express")
		}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(orderID, buyer, supplier,
		body.Address, body.ContactName, body.ContactPhone, deliveryDate,
		body.TimeSlot, urgency, body.Instructions, body.PaymentMethod)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, checkoutResponse{OrderID: orderID.String()})
}

type changeStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// ChangeOrderStatus handles POST /api/v1/orders/{orderID}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "invalid order ID")
	}
	actor, err := order.RoleFromString(ctx.Request().Header.Get(actingRoleHeader))
	if err != nil {
		return badRequest(ctx, "missing or invalid "+actingRoleHeader+" header")
	}

	var body changeStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	target, err := order.StatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "unknown order status")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, actor, body.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type markPaymentRequest struct {
	Status string `json:"status"`
}

// MarkPayment handles POST /api/v1/orders/{orderID}/payment.
func (s *Server) MarkPayment(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "invalid order ID")
	}

	var body markPaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	status, err := order.PaymentStatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "unknown payment status")
	}

	cmd, err := commands.NewMarkPaymentCommand(orderID, status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := s.markPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type ensureInvoiceResponse struct {
	InvoiceID     string `json:"invoice_id"`
	DisplayNumber string `json:"display_number"`
}

// EnsureInvoice handles POST /api/v1/orders/{orderID}/invoice. The operation
// is idempotent: repeating it returns the already generated invoice.
func (s *Server) EnsureInvoice(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "invalid order ID")
	}

	cmd, err := commands.NewEnsureInvoiceCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	inv, err := s.ensureInvoiceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ensureInvoiceResponse{
		InvoiceID:     inv.ID().String(),
		DisplayNumber: inv.DisplayNumber(),
	})
}

type sendInvoiceEmailRequest struct {
	Recipient string `json:"recipient"`
}

// SendInvoiceEmail handles POST /api/v1/invoices/{invoiceID}/email.
func (s *Server) SendInvoiceEmail(ctx echo.Context) error {
	invoiceID, err := pathUUID(ctx, "invoiceID")
	if err != nil {
		return badRequest(ctx, "invalid invoice ID")
	}

	var body sendInvoiceEmailRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSendInvoiceEmailCommand(invoiceID, body.Recipient)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := s.sendInvoiceEmailHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// GetInvoiceArtifact handles GET /api/v1/invoices/{invoiceID}/artifact.
func (s *Server) GetInvoiceArtifact(ctx echo.Context) error {
	invoiceID, err := pathUUID(ctx, "invoiceID")
	if err != nil {
		return badRequest(ctx, "invalid invoice ID")
	}

	query, err := queries.NewGetInvoiceArtifactQuery(invoiceID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	response, err := s.getInvoiceArtifactHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(response.Artifact))
}

type orderItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

type orderResponse struct {
	ID         string `json:"id"`
	BuyerID    string `json:"buyer_id"`
	SupplierID string `json:"supplier_id"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method"`

	Items []orderItemResponse `json:"items"`

	Subtotal         int64  `json:"subtotal"`
	DeliveryFee      int64  `json:"delivery_fee"`
	UrgencySurcharge int64  `json:"urgency_surcharge"`
	Total            int64  `json:"total"`
	Currency         string `json:"currency"`

	DeliveryAddress string `json:"delivery_address"`
	ContactName     string `json:"contact_name"`
	ContactPhone    string `json:"contact_phone"`
	DeliveryDate    string `json:"delivery_date"`
	TimeSlot        string `json:"time_slot,omitempty"`
	Urgency         string `json:"urgency"`
	Instructions    string `json:"instructions,omitempty"`

	InvoiceID        *string `json:"invoice_id,omitempty"`
	TrackingID       *string `json:"tracking_id,omitempty"`
	DispatchPending  bool    `json:"dispatch_pending"`
	DispatchAttempts int     `json:"dispatch_attempts"`

	CancelReason   string `json:"cancel_reason,omitempty"`
	RefundEligible bool   `json:"refund_eligible"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetOrder handles GET /api/v1/orders/{orderID}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	model, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := orderResponse{
		ID:               model.ID.String(),
		BuyerID:          model.BuyerID.String(),
		SupplierID:       model.SupplierID.String(),
		Status:           model.Status,
		PaymentStatus:    model.PaymentStatus,
		PaymentMethod:    model.PaymentMethod,
		Items:            make([]orderItemResponse, 0, len(model.Items)),
		Subtotal:         model.Subtotal,
		DeliveryFee:      model.DeliveryFee,
		UrgencySurcharge: model.UrgencySurcharge,
		Total:            model.Total,
		Currency:         model.Currency,
		DeliveryAddress:  model.DeliveryAddress,
		ContactName:      model.ContactName,
		ContactPhone:     model.ContactPhone,
		DeliveryDate:     model.DeliveryDate.Format("2006-01-02"),
		TimeSlot:         model.TimeSlot,
		Urgency:          model.Urgency,
		Instructions:     model.Instructions,
		DispatchPending:  model.DispatchPending,
		DispatchAttempts: model.DispatchAttempts,
		CancelReason:     model.CancelReason,
		RefundEligible:   model.RefundEligible,
		Version:          model.Version,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
	for _, item := range model.Items {
		response.Items = append(response.Items, orderItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	if model.InvoiceID != nil {
		id := model.InvoiceID.String()
		response.InvoiceID = &id
	}
	response.TrackingID = model.TrackingID

	return ctx.JSON(http.StatusOK, response)
}

type activeOrderResponse struct {
	ID         string `json:"id"`
	BuyerID    string `json:"buyer_id"`
	SupplierID string `json:"supplier_id"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	Total    int64  `json:"total"`
	Currency string `json:"currency"`

	DeliveryDate    string `json:"delivery_date"`
	Urgency         string `json:"urgency"`
	DispatchPending bool   `json:"dispatch_pending"`

	CreatedAt time.Time `json:"created_at"`
}

// GetActiveOrders handles GET /api/v1/orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query, err := queries.NewGetActiveOrdersQuery()
	if err != nil {
		return mapError(ctx, err)
	}
	model, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]activeOrderResponse, 0, len(model.Orders))
	for _, row := range model.Orders {
		response = append(response, activeOrderResponse{
			ID:              row.ID.String(),
			BuyerID:         row.BuyerID.String(),
			SupplierID:      row.SupplierID.String(),
			Status:          row.Status,
			PaymentStatus:   row.PaymentStatus,
			Total:           row.Total,
			Currency:        row.Currency,
			DeliveryDate:    row.DeliveryDate.Format("2006-01-02"),
			Urgency:         row.Urgency,
			DispatchPending: row.DispatchPending,
			CreatedAt:       row.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}
