package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/glamconnect/internal/usecase/booking"
)

type BookingHandler struct {
	create      *ucBooking.CreateBooking
	list        *ucBooking.ListBookings
	update      *ucBooking.UpdateBooking
	delete      *ucBooking.DeleteBooking
	adminUpdate *ucBooking.AdminUpdateBooking
	adminDelete *ucBooking.AdminDeleteBooking
	log         *zap.Logger
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	list *ucBooking.ListBookings,
	update *ucBooking.UpdateBooking,
	del *ucBooking.DeleteBooking,
	adminUpdate *ucBooking.AdminUpdateBooking,
	adminDelete *ucBooking.AdminDeleteBooking,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		create:      create,
		list:        list,
		update:      update,
		delete:      del,
		adminUpdate: adminUpdate,
		adminDelete: adminDelete,
		log:         log.Named("booking"),
	}
}

func (h *BookingHandler) Routes(d *Dispatcher) {
	d.Register("createBooking", AccessCustomer, h.Create)
	d.Register("getBookings", AccessSession, h.List)
	d.Register("updateBooking", AccessCustomer, h.Update)
	d.Register("deleteBooking", AccessCustomer, h.Delete)

	d.Register("adminUpdateBooking", AccessAdmin, h.AdminUpdate)
	d.Register("adminDeleteBooking", AccessAdmin, h.AdminDelete)
}

// --------- Requests ---------

type createBookingRequest struct {
	UserID    FlexUint `json:"userID"`
	ServiceID FlexUint `json:"serviceId"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Notes     string   `json:"notes"`
}

type listBookingsRequest struct {
	UserID *FlexUint `json:"userID"`
}

type updateBookingRequest struct {
	BookingID FlexUint `json:"bookingID"`
	UserID    FlexUint `json:"userID"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Notes     *string  `json:"notes"`
}

type deleteBookingRequest struct {
	BookingID FlexUint `json:"bookingID"`
	UserID    FlexUint `json:"userID"`
}

type adminUpdateBookingRequest struct {
	BookingID FlexUint  `json:"bookingID"`
	Date      *string   `json:"date"`
	Time      *string   `json:"time"`
	Notes     *string   `json:"notes"`
	Status    *string   `json:"status"`
	ServiceID *FlexUint `json:"service_id"`
}

type adminDeleteBookingRequest struct {
	BookingID FlexUint `json:"bookingID"`
}

// --------- Helpers ---------

// ownerID resolves the acting customer. A body userID must name the session
// user; an absent one defaults to it.
func ownerID(req *Request, bodyUserID uint, verb string) (uint, error) {
	if bodyUserID != 0 && bodyUserID != req.Session.SubjectID {
		return 0, httperr.Forbidden("Not authorized to " + verb + " this booking")
	}
	return req.Session.SubjectID, nil
}

// --------- Customer ---------

func (h *BookingHandler) Create(c *gin.Context, req *Request) {
	var in createBookingRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	userID, err := ownerID(req, in.UserID.Uint(), "create")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:    userID,
		ServiceID: in.ServiceID.Uint(),
		Date:      in.Date,
		Time:      in.Time,
		Notes:     in.Notes,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, "Booking created", gin.H{"bookingID": b.ID})
}

func (h *BookingHandler) List(c *gin.Context, req *Request) {
	var in listBookingsRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	requested := optUint(in.UserID)
	if requested != nil && *requested == 0 {
		requested = nil
	}

	var userID *uint
	switch {
	case req.Session.IsAdmin():
		userID = requested
	case requested != nil && *requested != req.Session.SubjectID:
		httperr.ForbiddenResponse(c, "Not authorized to view these bookings")
		return
	default:
		id := req.Session.SubjectID
		userID = &id
	}

	rows, err := h.list.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "", gin.H{"bookings": rows})
}

func (h *BookingHandler) Update(c *gin.Context, req *Request) {
	var in updateBookingRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	userID, err := ownerID(req, in.UserID.Uint(), "update")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	err = h.update.Execute(c.Request.Context(), ucBooking.UpdateBookingInput{
		BookingID: in.BookingID.Uint(),
		UserID:    userID,
		Date:      in.Date,
		Time:      in.Time,
		Notes:     in.Notes,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Booking updated", nil)
}

func (h *BookingHandler) Delete(c *gin.Context, req *Request) {
	var in deleteBookingRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	userID, err := ownerID(req, in.UserID.Uint(), "delete")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.delete.Execute(c.Request.Context(), in.BookingID.Uint(), userID); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Booking deleted", nil)
}

// --------- Admin ---------

func (h *BookingHandler) AdminUpdate(c *gin.Context, req *Request) {
	var in adminUpdateBookingRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	err := h.adminUpdate.Execute(c.Request.Context(), req.Session.SubjectID, ucBooking.AdminUpdateInput{
		BookingID: in.BookingID.Uint(),
		Date:      in.Date,
		Time:      in.Time,
		Notes:     in.Notes,
		Status:    in.Status,
		ServiceID: optUint(in.ServiceID),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Booking updated by admin", nil)
}

func (h *BookingHandler) AdminDelete(c *gin.Context, req *Request) {
	var in adminDeleteBookingRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.adminDelete.Execute(c.Request.Context(), req.Session.SubjectID, in.BookingID.Uint()); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Booking deleted", nil)
}
