package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/httpresp"
	ucCatalog "github.com/BruksfildServices01/glamconnect/internal/usecase/catalog"
)

type CatalogHandler struct {
	list   *ucCatalog.ListServices
	create *ucCatalog.CreateService
	update *ucCatalog.UpdateService
	delete *ucCatalog.DeleteService
	upload *ucCatalog.UploadServiceImage
	log    *zap.Logger
}

func NewCatalogHandler(
	list *ucCatalog.ListServices,
	create *ucCatalog.CreateService,
	update *ucCatalog.UpdateService,
	del *ucCatalog.DeleteService,
	upload *ucCatalog.UploadServiceImage,
	log *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		list:   list,
		create: create,
		update: update,
		delete: del,
		upload: upload,
		log:    log.Named("catalog"),
	}
}

func (h *CatalogHandler) Routes(d *Dispatcher) {
	d.Register("getServices", AccessPublic, h.List)
	d.Register("createService", AccessAdmin, h.Create)
	d.Register("updateService", AccessAdmin, h.Update)
	d.Register("deleteService", AccessAdmin, h.Delete)
	d.Register("uploadServiceImage", AccessAdmin, h.UploadImage)
}

// --------- Requests ---------

type serviceFieldsRequest struct {
	ServiceName *string          `json:"service_name"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Duration    *string          `json:"duration"`
	ImageURL    *string          `json:"image_url"`
	Icon        *string          `json:"icon"`
	IsActive    *FlexBool        `json:"is_active"`
}

func (r serviceFieldsRequest) fields() ucCatalog.ServiceFields {
	return ucCatalog.ServiceFields{
		ServiceName: r.ServiceName,
		Category:    r.Category,
		Description: r.Description,
		Price:       r.Price,
		Duration:    r.Duration,
		ImageURL:    r.ImageURL,
		Icon:        r.Icon,
		IsActive:    optBool(r.IsActive),
	}
}

type updateServiceRequest struct {
	ID FlexUint `json:"id"`
	serviceFieldsRequest
}

type serviceIDRequest struct {
	ID FlexUint `json:"id"`
}

type uploadImageRequest struct {
	ID    FlexUint `json:"id"`
	Image string   `json:"image"`
}

// --------- Handlers ---------

func (h *CatalogHandler) List(c *gin.Context, _ *Request) {
	services, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, "", gin.H{"services": services})
}

func (h *CatalogHandler) Create(c *gin.Context, req *Request) {
	var in serviceFieldsRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	svc, err := h.create.Execute(c.Request.Context(), req.Session.SubjectID, in.fields())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, "Service created", gin.H{"serviceID": svc.ID})
}

func (h *CatalogHandler) Update(c *gin.Context, req *Request) {
	var in updateServiceRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.update.Execute(c.Request.Context(), req.Session.SubjectID, in.ID.Uint(), in.fields()); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Service updated", nil)
}

func (h *CatalogHandler) Delete(c *gin.Context, req *Request) {
	var in serviceIDRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), req.Session.SubjectID, in.ID.Uint()); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Service deleted", nil)
}

func (h *CatalogHandler) UploadImage(c *gin.Context, req *Request) {
	var in uploadImageRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	url, err := h.upload.Execute(c.Request.Context(), req.Session.SubjectID, in.ID.Uint(), in.Image)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Image uploaded", gin.H{"image_url": url})
}
