package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/application/carflow"
	"github.com/jhoicas/oficina-manager/internal/application/dto"
	domainflow "github.com/jhoicas/oficina-manager/internal/domain/carflow"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// CarHandler maneja los carros y su avance por las etapas. Lo usan ambos portales.
type CarHandler struct {
	uc *carflow.UseCase
}

// NewCarHandler construye el handler.
func NewCarHandler(uc *carflow.UseCase) *CarHandler {
	return &CarHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar carro
// @Tags         cars
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CarRequest  true  "Carro"
// @Success      201   {object}  entity.Car
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cars [post]
func (h *CarHandler) Create(c *fiber.Ctx) error {
	var in dto.CarRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	images := make([]entity.Image, 0, len(in.Images))
	for i, img := range in.Images {
		name := img.FileName
		if name == "" {
			name = fmt.Sprintf("imagem_%d", i+1)
		}
		images = append(images, domainflow.DecodeDataURL(img.DataURL, name))
	}
	car, err := h.uc.AddCar(c.Context(), carflow.AddCarInput{
		Brand:        in.Brand,
		Model:        in.Model,
		Year:         in.Year,
		VIN:          in.VIN,
		Plate:        in.Plate,
		Customer:     in.Customer,
		Description:  in.Description,
		Parts:        in.Parts,
		Images:       images,
		DeliveryDate: in.DeliveryDate,
		ExitDate:     in.ExitDate,
		ServiceValue: in.ServiceValue,
		Actor:        actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(car)
}

// List godoc
// @Summary      Listar carros
// @Description  view: in-progress | completed | history. period (só history): all, today, week, month, year, custom.
// @Tags         cars
// @Security     Bearer
// @Produce      json
// @Param        view    query  string  false  "Visão"
// @Param        period  query  string  false  "Período do histórico"
// @Param        from    query  string  false  "AAAA-MM-DD (custom)"
// @Param        to      query  string  false  "AAAA-MM-DD (custom)"
// @Success      200     {array}   entity.Car
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/cars [get]
func (h *CarHandler) List(c *fiber.Ctx) error {
	from, err := dateQuery(c, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := dateQuery(c, "to")
	if err != nil {
		return writeError(c, err)
	}
	cars, err := h.uc.ListCars(c.Context(), carflow.ListFilter{
		View:   carflow.View(c.Query("view")),
		Period: carflow.Period(c.Query("period")),
		From:   from,
		To:     to,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cars)
}

// ListInProgress GET /api/store/cars: la loja solo ve los carros en andamento.
func (h *CarHandler) ListInProgress(c *fiber.Ctx) error {
	cars, err := h.uc.ListCars(c.Context(), carflow.ListFilter{View: carflow.ViewInProgress})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cars)
}

// Get GET /api/cars/:id
func (h *CarHandler) Get(c *fiber.Ctx) error {
	car, err := h.uc.GetCar(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(car)
}

// MarkRead POST /api/cars/:id/read: limpia los indicadores de novedad.
func (h *CarHandler) MarkRead(c *fiber.Ctx) error {
	car, err := h.uc.MarkRead(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(car)
}

// CompleteStage godoc
// @Summary      Concluir a etapa atual
// @Description  Exige a senha do funcionário. Materiais informados são baixados do estoque.
// @Tags         store
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID do carro"
// @Param        body  body  dto.CompleteStageRequest  true  "Conclusão"
// @Success      200   {object}  entity.Car
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/store/cars/{id}/complete [post]
func (h *CarHandler) CompleteStage(c *fiber.Ctx) error {
	var in dto.CompleteStageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	employeeID := in.EmployeeID
	if employeeID == "" {
		employeeID = GetSubject(c)
	}
	car, err := h.uc.CompleteStage(c.Context(), carflow.CompleteStageInput{
		CarID:        c.Params("id"),
		EmployeeID:   employeeID,
		AuthPassword: in.Password,
		Comments:     in.Comments,
		Photos:       in.Photos,
		Data:         in.Data,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(car)
}

// RevertStage godoc
// @Summary      Voltar o carro para a etapa anterior
// @Tags         cars
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do carro"
// @Success      200  {object}  entity.Car
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cars/{id}/revert [post]
func (h *CarHandler) RevertStage(c *fiber.Ctx) error {
	car, err := h.uc.RevertStage(c.Context(), c.Params("id"), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(car)
}

// ReportProblem POST /api/store/cars/:id/problems
func (h *CarHandler) ReportProblem(c *fiber.Ctx) error {
	var in dto.TextRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	car, err := h.uc.ReportProblem(c.Context(), c.Params("id"), actor(c), in.Text)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(car)
}

// ResolveProblem POST /api/cars/:id/problems/:entryId/resolve
func (h *CarHandler) ResolveProblem(c *fiber.Ctx) error {
	car, err := h.uc.ResolveProblem(c.Context(), c.Params("id"), c.Params("entryId"), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(car)
}

// AddPhotos POST /api/store/cars/:id/photos: fotos de la etapa actual sin concluirla.
func (h *CarHandler) AddPhotos(c *fiber.Ctx) error {
	var in dto.PhotosRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	car, err := h.uc.AddStagePhotos(c.Context(), c.Params("id"), in.Photos)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(car)
}
