// file: internals/features/siswa/controller/siswa_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"datasiswa_backend/internals/constants"
	"datasiswa_backend/internals/features/siswa/dto"
	"datasiswa_backend/internals/features/siswa/repository"
	"datasiswa_backend/internals/features/siswa/service"
	helper "datasiswa_backend/internals/helpers"
)

type SiswaController struct {
	Service  *service.SiswaService
	Sessions *session.Store
}

func NewSiswaController(svc *service.SiswaService, store *session.Store) *SiswaController {
	return &SiswaController{Service: svc, Sessions: store}
}

func (ctrl *SiswaController) displayName(c *fiber.Ctx) string {
	if name, ok := c.Locals(helper.LocUsername).(string); ok && name != "" {
		return name
	}
	return constants.DefaultDisplayName
}

// GET /
func (ctrl *SiswaController) Home(c *fiber.Ctx) error {
	return ctrl.renderList(c, "home", "Home", fiber.Map{"Nama": ctrl.displayName(c)})
}

// GET /data-siswa
func (ctrl *SiswaController) List(c *fiber.Ctx) error {
	return ctrl.renderList(c, "data-siswa", "Data Siswa", fiber.Map{})
}

func (ctrl *SiswaController) renderList(c *fiber.Ctx, page, title string, data fiber.Map) error {
	siswas, err := ctrl.Service.List(c.UserContext())
	if err != nil {
		return helper.RenderStoreError(c, "list siswa", err)
	}
	msg, err := helper.TakeFlash(c, ctrl.Sessions)
	if err != nil {
		return helper.RenderStoreError(c, "session", err)
	}
	data["Siswas"] = siswas
	data["Msg"] = msg
	return helper.Render(c, fiber.StatusOK, page, title, data)
}

/* =========================================================
   CREATE
   ========================================================= */

// GET /data-siswa/add
func (ctrl *SiswaController) AddForm(c *fiber.Ctx) error {
	return ctrl.renderAdd(c, fiber.StatusOK, dto.SiswaForm{}, nil)
}

func (ctrl *SiswaController) renderAdd(c *fiber.Ctx, status int, form dto.SiswaForm, errs []helper.FieldError) error {
	return helper.Render(c, status, "add-siswa", "Tambah Siswa", fiber.Map{
		"Siswa":  form,
		"Errors": errs,
	})
}

// POST /data-siswa
func (ctrl *SiswaController) Create(c *fiber.Ctx) error {
	var form dto.SiswaForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Form tidak valid")
	}
	form.Normalize()

	errs, err := ctrl.Service.Create(c.UserContext(), form)
	if err != nil {
		return helper.RenderStoreError(c, "tambah siswa", err)
	}
	if len(errs) > 0 {
		return ctrl.renderAdd(c, fiber.StatusUnprocessableEntity, form, errs)
	}

	log.Printf("[INFO] siswa baru nisn=%s", form.NISN)
	return ctrl.flashRedirect(c, constants.MsgSiswaCreated)
}

/* =========================================================
   UPDATE
   ========================================================= */

// GET /data-siswa/edit/:nisn
func (ctrl *SiswaController) EditForm(c *fiber.Ctx) error {
	siswa, err := ctrl.Service.Get(c.UserContext(), c.Params("nisn"))
	if errors.Is(err, repository.ErrNotFound) {
		return helper.RenderNotFound(c, constants.MsgSiswaNotFound)
	}
	if err != nil {
		return helper.RenderStoreError(c, "ambil siswa", err)
	}
	return ctrl.renderEdit(c, fiber.StatusOK, dto.FromModel(siswa), nil)
}

func (ctrl *SiswaController) renderEdit(c *fiber.Ctx, status int, form dto.SiswaForm, errs []helper.FieldError) error {
	return helper.Render(c, status, "edit-siswa", "Edit Siswa", fiber.Map{
		"Siswa":  form,
		"Errors": errs,
	})
}

// PUT /data-siswa
func (ctrl *SiswaController) Update(c *fiber.Ctx) error {
	var form dto.SiswaForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Form tidak valid")
	}
	form.Normalize()

	errs, err := ctrl.Service.Update(c.UserContext(), form)
	if errors.Is(err, repository.ErrNotFound) {
		return helper.RenderNotFound(c, constants.MsgSiswaNotFound)
	}
	if err != nil {
		return helper.RenderStoreError(c, "update siswa", err)
	}
	if len(errs) > 0 {
		return ctrl.renderEdit(c, fiber.StatusUnprocessableEntity, form, errs)
	}
	return ctrl.flashRedirect(c, constants.MsgSiswaUpdated)
}

/* =========================================================
   DELETE
   ========================================================= */

// DELETE /data-siswa (nisn tidak ada tetap dianggap sukses)
func (ctrl *SiswaController) Delete(c *fiber.Ctx) error {
	nisn := c.FormValue("nisn")
	n, err := ctrl.Service.Delete(c.UserContext(), nisn)
	if err != nil {
		return helper.RenderStoreError(c, "hapus siswa", err)
	}
	log.Printf("[INFO] hapus siswa nisn=%s deleted=%d", nisn, n)
	return ctrl.flashRedirect(c, constants.MsgSiswaDeleted)
}

func (ctrl *SiswaController) flashRedirect(c *fiber.Ctx, msg string) error {
	if err := helper.Flash(c, ctrl.Sessions, msg); err != nil {
		return helper.RenderStoreError(c, "session", err)
	}
	return c.Redirect("/data-siswa", fiber.StatusFound)
}
