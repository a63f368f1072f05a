package handlers

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lucaromano98/debiti-stop/internal/middleware"
	"github.com/lucaromano98/debiti-stop/internal/models"
	"github.com/lucaromano98/debiti-stop/internal/services"
	"github.com/lucaromano98/debiti-stop/internal/storage"
)

// salvaDocumento valida, archivia e registra un singolo file.
func (h *Handler) salvaDocumento(cliente *models.Cliente, fh *multipart.FileHeader, categoria models.Categoria, descrizione string) (*models.DocumentoCliente, error) {
	if err := storage.ValidaEstensione(fh.Filename); err != nil {
		return nil, err
	}

	relPath := storage.PercorsoDocumento(cliente.ID, categoria, fh.Filename, time.Now())

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("apertura upload: %w", err)
	}
	defer src.Close()

	if err := h.Store.Save(relPath, src); err != nil {
		return nil, fmt.Errorf("salvataggio file: %w", err)
	}

	doc := models.DocumentoCliente{
		ClienteID:   cliente.ID,
		Categoria:   categoria,
		FilePath:    relPath,
		NomeFile:    fh.Filename,
		Descrizione: descrizione,
	}
	if err := h.DB.Create(&doc).Error; err != nil {
		// il file resta orfano nello storage: meglio orfano che perso
		return nil, err
	}
	return &doc, nil
}

// CaricaDocumento gestisce l'upload singolo (multipart: file, categoria,
// descrizione).
func (h *Handler) CaricaDocumento(c *gin.Context) {
	cliente, ok := h.clienteDaParam(c)
	if !ok {
		return
	}

	categoria := models.Categoria(c.PostForm("categoria"))
	if categoria == "" {
		categoria = models.CategoriaAnagrafici
	}
	if !categoria.Valida() {
		violazioni(c, map[string]string{"categoria": "valore non ammesso"})
		return
	}
	if categoria.Legacy() {
		violazioni(c, map[string]string{"categoria": models.ErrCategoriaLegacy.Error()})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		violazioni(c, map[string]string{"file": "obbligatorio"})
		return
	}

	doc, err := h.salvaDocumento(cliente, fh, categoria, c.PostForm("descrizione"))
	if err != nil {
		if errIsValidazione(err) {
			violazioni(c, map[string]string{"file": err.Error()})
			return
		}
		h.internalError(c, "carica documento", err)
		return
	}

	services.NotificaDocumentoCaricato(h.DB, h.Log, services.NotificaDocumento{
		Actor:     middleware.CurrentUser(c),
		Cliente:   cliente,
		Documento: doc,
		Count:     1,
	})
	h.Cache.InvalidateUnread(c.Request.Context())

	c.JSON(http.StatusCreated, doc)
}

// CaricaVisure è l'upload multiplo di visure: tutti i file finiscono
// nella categoria "visure" e viene emessa una sola notifica cumulativa.
func (h *Handler) CaricaVisure(c *gin.Context) {
	cliente, ok := h.clienteDaParam(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "multipart non valido")
		return
	}
	files := form.File["visure_files"]
	if len(files) == 0 {
		violazioni(c, map[string]string{"visure_files": "obbligatorio"})
		return
	}

	var ids []uint
	scartati := map[string]string{}
	for _, fh := range files {
		doc, err := h.salvaDocumento(cliente, fh, models.CategoriaVisure, "Visura: "+fh.Filename)
		if err != nil {
			if errIsValidazione(err) {
				scartati[fh.Filename] = err.Error()
				continue
			}
			h.internalError(c, "carica visure", err)
			return
		}
		ids = append(ids, doc.ID)
	}

	if len(ids) > 0 {
		services.NotificaDocumentoCaricato(h.DB, h.Log, services.NotificaDocumento{
			Actor:          middleware.CurrentUser(c),
			Cliente:        cliente,
			Count:          len(ids),
			CategoriaLabel: models.CategoriaVisure.Label(),
			DocumentoIDs:   ids,
		})
		h.Cache.InvalidateUnread(c.Request.Context())
	}

	c.JSON(http.StatusCreated, gin.H{"caricate": len(ids), "documento_ids": ids, "scartati": scartati})
}

// ScaricaDocumentiZip serve tutti i documenti del cliente in un unico
// archivio costruito in memoria.
func (h *Handler) ScaricaDocumentiZip(c *gin.Context) {
	cliente, ok := h.clienteDaParam(c)
	if !ok {
		return
	}

	var documenti []models.DocumentoCliente
	if err := h.DB.Where("cliente_id = ?", cliente.ID).Find(&documenti).Error; err != nil {
		h.internalError(c, "zip documenti", err)
		return
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, d := range documenti {
		src, err := h.Store.Open(d.FilePath)
		if err != nil {
			// file mancante nello storage: si salta, lo zip resta utile
			h.Log.Warn("documento non leggibile", zap.String("path", d.FilePath), zap.Error(err))
			continue
		}
		arcname := fmt.Sprintf("%s/%s", d.Categoria, path.Base(d.FilePath))
		w, err := zw.Create(arcname)
		if err == nil {
			_, err = io.Copy(w, src)
		}
		src.Close()
		if err != nil {
			zw.Close()
			h.internalError(c, "zip documenti", err)
			return
		}
	}
	if err := zw.Close(); err != nil {
		h.internalError(c, "zip documenti", err)
		return
	}

	filename := fmt.Sprintf("documenti_cliente_%d.zip", cliente.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

func (h *Handler) EliminaDocumento(c *gin.Context) {
	id := paramID(c, "id")
	var doc models.DocumentoCliente
	if err := h.DB.First(&doc, id).Error; err != nil {
		notFound(c, "documento non trovato")
		return
	}

	if err := h.DB.Delete(&doc).Error; err != nil {
		h.internalError(c, "elimina documento", err)
		return
	}
	if h.Store != nil {
		if err := h.Store.Delete(doc.FilePath); err != nil {
			h.Log.Warn("file non rimosso dallo storage", zap.String("path", doc.FilePath), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"detail": "documento eliminato", "cliente_id": doc.ClienteID})
}

func (h *Handler) clienteDaParam(c *gin.Context) (*models.Cliente, bool) {
	var cliente models.Cliente
	if err := h.DB.First(&cliente, paramID(c, "id")).Error; err != nil {
		notFound(c, "cliente non trovato")
		return nil, false
	}
	return &cliente, true
}

func errIsValidazione(err error) bool {
	return errors.Is(err, storage.ErrEstensioneNonAmmessa) || errors.Is(err, models.ErrCategoriaLegacy)
}
