package handlers

import (
	"errors"
	"strconv"

	"github.com/aaposadas/book-inventory-api/internal/dto"
	"github.com/aaposadas/book-inventory-api/internal/middleware"
	"github.com/aaposadas/book-inventory-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BookHandler struct {
	bookService *services.BookService
}

func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

func (h *BookHandler) List(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))

	result, err := h.bookService.List(identity.UserID, page, pageSize, c.Query("search"), c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch books",
		})
	}

	c.Set("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Set("X-Page", strconv.Itoa(result.Page))
	c.Set("X-Page-Size", strconv.Itoa(result.PageSize))
	return c.JSON(result.Items)
}

func (h *BookHandler) Get(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseBookID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid book ID",
		})
	}

	book, err := h.bookService.GetByID(identity.UserID, id)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch book",
		})
	}

	return c.JSON(book)
}

func (h *BookHandler) CreateFromISBN(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	book, err := h.bookService.CreateFromISBN(identity.UserID, c.Params("isbn"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidISBN):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrDuplicateISBN):
			return c.Status(fiber.StatusConflict).JSON(dto.IsbnConflictResponse{
				Error:    true,
				Message:  err.Error(),
				Existing: book,
			})
		case errors.Is(err, services.ErrLookupNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrLookupUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: services.ErrLookupUnavailable.Error(),
			})
		case errors.Is(err, services.ErrLookupNotConfigured):
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to create book",
			})
		}
	}

	return c.JSON(book)
}

func (h *BookHandler) Update(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseBookID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid book ID",
		})
	}

	var req dto.UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.bookService.Update(identity.UserID, id, &req); err != nil {
		if errors.Is(err, services.ErrTitleRequired) || errors.Is(err, services.ErrAuthorRequired) ||
			errors.Is(err, services.ErrInvalidISBN) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrBookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update book",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *BookHandler) Delete(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseBookID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid book ID",
		})
	}

	if err := h.bookService.Delete(identity.UserID, id); err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete book",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseBookID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
