package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/onsideagency/touchline/internal/highlights"
)

// maxUploadMemory bounds how much of a multipart body is buffered in memory
// before spilling to temp files.
const maxUploadMemory = 64 << 20

func readFormFile(fh *multipart.FileHeader) (highlights.UploadFile, error) {
	f, err := fh.Open()
	if err != nil {
		return highlights.UploadFile{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return highlights.UploadFile{}, err
	}
	return highlights.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (s *Server) GetHighlightsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "Missing playerID parameter", http.StatusBadRequest)
			return
		}

		collection, err := s.Highlights.Collection(r.Context(), playerID)
		if err != nil {
			http.Error(w, "Failed to get highlights", http.StatusInternalServerError)
			log.Error("Failed to get highlights", "playerID", playerID, "error", err)
			return
		}
		writeJSON(w, collection)
	}
}

func (s *Server) UploadHighlightsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			http.Error(w, "Invalid multipart form", http.StatusBadRequest)
			return
		}
		playerID := r.FormValue("playerID")
		if playerID == "" {
			http.Error(w, "Missing playerID field", http.StatusBadRequest)
			return
		}
		partition, err := highlights.ParsePartition(r.FormValue("partition"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		headers := r.MultipartForm.File["videos"]
		if len(headers) == 0 {
			http.Error(w, "No video files provided", http.StatusBadRequest)
			return
		}

		files := make([]highlights.UploadFile, 0, len(headers))
		for _, fh := range headers {
			file, err := readFormFile(fh)
			if err != nil {
				http.Error(w, "Failed to read uploaded file", http.StatusBadRequest)
				log.Error("Failed to read uploaded file", "file", fh.Filename, "error", err)
				return
			}
			files = append(files, file)
		}

		log.Info("Enqueueing uploads", "playerID", playerID, "partition", partition, "count", len(files))
		ids := s.Uploader.Enqueue(playerID, partition, files)
		w.WriteHeader(http.StatusAccepted)
		writeJSON(w, map[string]any{"uploadIds": ids})
	}
}

func (s *Server) ListUploadsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		writeJSON(w, s.Uploader.Items(playerID))
	}
}

func (s *Server) RetryUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uploadID := r.URL.Query().Get("uploadID")
		if uploadID == "" {
			http.Error(w, "Missing uploadID parameter", http.StatusBadRequest)
			return
		}
		// The retry picks up any title the user edited while the item sat in
		// the error state.
		if name := r.URL.Query().Get("clipName"); name != "" {
			if err := s.Uploader.SetClipName(uploadID, name); err != nil {
				http.Error(w, "Unknown upload", http.StatusNotFound)
				return
			}
		}
		if err := s.Uploader.Retry(uploadID); err != nil {
			if errors.Is(err, highlights.ErrUnknownUpload) {
				http.Error(w, "Unknown upload", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		log.Info("Upload retry started", "uploadID", uploadID)
		fmt.Fprintf(w, "Retrying upload %s", uploadID)
	}
}

func (s *Server) RemoveUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uploadID := r.URL.Query().Get("uploadID")
		if uploadID == "" {
			http.Error(w, "Missing uploadID parameter", http.StatusBadRequest)
			return
		}
		s.Uploader.Remove(uploadID)
		fmt.Fprintf(w, "Removed upload %s", uploadID)
	}
}

func (s *Server) AttachLogoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			http.Error(w, "Invalid multipart form", http.StatusBadRequest)
			return
		}
		uploadID := r.FormValue("uploadID")
		if uploadID == "" {
			http.Error(w, "Missing uploadID field", http.StatusBadRequest)
			return
		}
		fh, err := formFileHeader(r, "logo")
		if err != nil {
			http.Error(w, "Missing logo file", http.StatusBadRequest)
			return
		}
		file, err := readFormFile(fh)
		if err != nil {
			http.Error(w, "Failed to read logo file", http.StatusBadRequest)
			return
		}
		if err := s.Uploader.AttachLogo(uploadID, file.Name, file.Data, file.ContentType); err != nil {
			http.Error(w, "Unknown upload", http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, "Logo attached to upload %s", uploadID)
	}
}

func formFileHeader(r *http.Request, field string) (*multipart.FileHeader, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, fmt.Errorf("missing form file %q", field)
	}
	return r.MultipartForm.File[field][0], nil
}

type reorderPayload struct {
	PlayerID  string `json:"playerId" validate:"required"`
	Partition string `json:"partition" validate:"required"`
	From      int    `json:"from" validate:"gte=0"`
	To        int    `json:"to" validate:"gte=0"`
}

func (s *Server) ReorderClipHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload reorderPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		partition, err := highlights.ParsePartition(payload.Partition)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.Highlights.Reorder(r.Context(), payload.PlayerID, partition, payload.From, payload.To); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			log.Error("Failed to reorder clip", "playerID", payload.PlayerID, "error", err)
			return
		}
		log.Info("Clip reordered", "playerID", payload.PlayerID, "partition", partition, "from", payload.From, "to", payload.To)
		fmt.Fprint(w, "OK")
	}
}

type deleteClipPayload struct {
	PlayerID  string `json:"playerId" validate:"required"`
	Partition string `json:"partition" validate:"required"`
	Index     int    `json:"index" validate:"gte=0"`
}

func (s *Server) DeleteClipHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload deleteClipPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		partition, err := highlights.ParsePartition(payload.Partition)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.Highlights.DeleteClip(r.Context(), payload.PlayerID, partition, payload.Index); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			log.Error("Failed to delete clip", "playerID", payload.PlayerID, "error", err)
			return
		}
		log.Info("Clip deleted", "playerID", payload.PlayerID, "partition", partition, "index", payload.Index)
		fmt.Fprint(w, "OK")
	}
}

func (s *Server) UpdateClipHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			http.Error(w, "Invalid multipart form", http.StatusBadRequest)
			return
		}
		playerID := r.FormValue("playerID")
		if playerID == "" {
			http.Error(w, "Missing playerID field", http.StatusBadRequest)
			return
		}
		clipID := r.FormValue("clipID")
		videoURL := r.FormValue("videoUrl")
		if clipID == "" && videoURL == "" {
			http.Error(w, "Missing clipID or videoUrl field", http.StatusBadRequest)
			return
		}

		upd := highlights.ClipUpdate{
			ID:       clipID,
			VideoURL: videoURL,
			Name:     r.FormValue("name"),
		}

		// An optional replacement logo is uploaded first, so the document
		// mutation only ever stores a URL that actually exists.
		if fh, err := formFileHeader(r, "logo"); err == nil {
			file, err := readFormFile(fh)
			if err != nil {
				http.Error(w, "Failed to read logo file", http.StatusBadRequest)
				return
			}
			// The timestamp keeps repeat edits with a same-named file from
			// overwriting the previous logo object.
			path := fmt.Sprintf("highlights/logos/%s_%d_logo_%s", playerID, time.Now().UnixMilli(), highlights.SanitizeFileName(file.Name))
			logoURL, err := s.Blob.Upload(r.Context(), path, file.Data, file.ContentType)
			if err != nil {
				http.Error(w, "Failed to upload logo", http.StatusInternalServerError)
				log.Error("Failed to upload replacement logo", "playerID", playerID, "error", err)
				return
			}
			upd.ClubLogo = &logoURL
		}

		if err := s.Highlights.UpdateClip(r.Context(), playerID, upd); err != nil {
			if errors.Is(err, highlights.ErrClipNotFound) {
				http.Error(w, "Clip not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to update clip", http.StatusInternalServerError)
			log.Error("Failed to update clip", "playerID", playerID, "clipID", clipID, "error", err)
			return
		}
		log.Info("Clip updated", "playerID", playerID, "clipID", clipID)
		fmt.Fprint(w, "OK")
	}
}
