package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

// ListInvoices lists parsed invoices.
func (c *Client) ListInvoices(ctx context.Context, s *model.Session) model.Result[[]model.Invoice] {
	return call[[]model.Invoice](ctx, c, withSession(s), request{
		method:      http.MethodGet,
		path:        "/api/Invoices",
		okMessage:   "Invoices loaded.",
		failMessage: "Failed to load invoices.",
	})
}

// GetInvoice fetches one invoice with its extraData.
func (c *Client) GetInvoice(ctx context.Context, s *model.Session, id string) model.Result[model.Invoice] {
	return call[model.Invoice](ctx, c, withSession(s), request{
		method:      http.MethodGet,
		path:        "/api/Invoices/" + segment(id),
		okMessage:   "Invoice loaded.",
		failMessage: "Failed to load the invoice. Try again later.",
	})
}

// ListFiles lists uploaded files, parsed or not.
func (c *Client) ListFiles(ctx context.Context, s *model.Session) model.Result[[]model.InvoiceFile] {
	return call[[]model.InvoiceFile](ctx, c, withSession(s), request{
		method:      http.MethodGet,
		path:        "/api/Invoices/files",
		okMessage:   "Files loaded.",
		failMessage: "Failed to load files.",
	})
}

// Upload sends an invoice file for processing as multipart form data.
func (c *Client) Upload(ctx context.Context, s *model.Session, u model.Upload) model.Result[model.UploadReceipt] {
	if !s.Valid() {
		return model.Failure[model.UploadReceipt](NotSignedInMessage)
	}
	if u.File == nil {
		return model.Failure[model.UploadReceipt]("Choose a file to upload.")
	}

	body, contentType, err := encodeUpload(u)
	if err != nil {
		c.logger.Error("encode upload", "file", u.FileName, "error", err)
		return model.Failure[model.UploadReceipt]("Failed to read the file.")
	}

	res := call[json.RawMessage](ctx, c, withSession(s), request{
		method:      http.MethodPost,
		path:        "/api/v1/files/upload",
		body:        body,
		contentType: contentType,
		okMessage:   "File uploaded.",
		failMessage: "Failed to upload the invoice.",
	})
	return model.MapResult(res, func(raw json.RawMessage) model.UploadReceipt {
		receipt := model.UploadReceipt{FileName: u.FileName, Raw: raw}
		// The acknowledgement shape varies; anything that is not a receipt
		// object keeps only Raw.
		var decoded model.UploadReceipt
		if err := json.Unmarshal(raw, &decoded); err != nil {
			c.logger.Debug("upload acknowledgement is not a receipt", "file", u.FileName, "error", err)
			return receipt
		}
		receipt.ID = decoded.ID
		if decoded.FileName != "" {
			receipt.FileName = decoded.FileName
		}
		return receipt
	})
}

func encodeUpload(u model.Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("File", u.FileName)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, u.File); err != nil {
		return nil, "", fmt.Errorf("copy file: %w", err)
	}

	fields := []struct{ name, value string }{
		{"CostCenterId", u.CostCenterID},
		{"ExpenseTypeId", u.ExpenseTypeID},
		{"isPublic", strconv.FormatBool(u.IsPublic)},
		{"ProcessImmediately", strconv.FormatBool(u.ProcessImmediately)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
