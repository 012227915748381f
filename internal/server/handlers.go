package server

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/garb/internal/archive"
	"github.com/jmylchreest/garb/internal/colour"
	garbimage "github.com/jmylchreest/garb/internal/image"
	"github.com/jmylchreest/garb/internal/recommend"
	"github.com/jmylchreest/garb/internal/rules"
	"github.com/jmylchreest/garb/internal/security"
	"github.com/jmylchreest/garb/internal/style"
	"github.com/jmylchreest/garb/internal/version"
)

// analyzeRequest is the body of POST /api/v1/analyze.
type analyzeRequest struct {
	Filepath string        `json:"filepath" binding:"required"`
	Styles   rules.Styles  `json:"styles"`
	Context  rules.Context `json:"context"`
}

// analyzedColor is one dominant colour in an analysis response.
type analyzedColor struct {
	RGB        []int             `json:"rgb"`
	Percentage float64           `json:"percentage"`
	Name       colour.ColourName `json:"name"`
	Tone       colour.Tone       `json:"tone"`
}

// wardrobeImage describes one stored wardrobe image.
type wardrobeImage struct {
	Filename   string `json:"filename"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploaded_at"`
	Size       int64  `json:"size"`
}

// errorResponse writes the JSON error envelope shared by all endpoints.
func errorResponse(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}

// handleUpload stores a multipart image upload in the wardrobe directory.
func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "no file uploaded")
		return
	}
	if file.Filename == "" {
		errorResponse(c, http.StatusBadRequest, "empty filename")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !slices.Contains(garbimage.SupportedImageExtensions(), ext) {
		errorResponse(c, http.StatusBadRequest,
			"unsupported file format, please upload an image (png, jpg, jpeg, gif, bmp, webp)")
		return
	}

	if file.Size > s.cfg.Server.MaxUploadBytes {
		errorResponse(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file too large, the limit is %dMB", s.cfg.Server.MaxUploadBytes/(1024*1024)))
		return
	}

	// Timestamp plus UUID keeps stored names unique and collision free.
	name := fmt.Sprintf("%s_%s%s", time.Now().Format("20060102_150405"), uuid.New().String(), ext)
	dst := filepath.Join(s.cfg.Wardrobe.Dir, name)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		s.logger.Error("upload failed", "error", err)
		errorResponse(c, http.StatusInternalServerError, "upload failed")
		return
	}

	s.logger.Info("image uploaded", "filename", name, "size", file.Size)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"filepath": name,
		"filename": name,
		"url":      "/images/uploads/" + name,
	})
}

// handleAnalyze runs the full outfit analysis for a stored image:
// dominant colours, combination score, optional garment recognition and
// the dressing rule evaluation.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			errorResponse(c, http.StatusBadRequest, "missing file path")
			return
		}
		errorResponse(c, http.StatusBadRequest, "malformed request body")
		return
	}

	path := req.Filepath
	if !filepath.IsAbs(path) {
		if err := security.ValidateFilePath(path, s.cfg.Wardrobe.Dir); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid file path")
			return
		}
		path = filepath.Join(s.cfg.Wardrobe.Dir, path)
	}
	if _, err := os.Stat(path); err != nil {
		errorResponse(c, http.StatusNotFound, "file does not exist")
		return
	}

	styles := req.Styles
	predictions := make([]style.Prediction, 0)

	g, gctx := errgroup.WithContext(c.Request.Context())

	var palette *colour.Palette
	g.Go(func() error {
		img, err := s.loader.Load(path)
		if err != nil {
			return fmt.Errorf("colour extraction failed: %v", err)
		}
		p, err := s.extractor.Extract(img, s.cfg.Analysis.ColorCount)
		if err != nil {
			return fmt.Errorf("colour extraction failed: %v", err)
		}
		palette = p
		return nil
	})

	// Garment recognition only runs when the caller did not name styles.
	if styles == (rules.Styles{}) && s.recognizer != nil {
		g.Go(func() error {
			preds, err := s.recognizer.Predict(gctx, path, 3)
			if err != nil {
				// Recognition is best effort; analysis proceeds without styles.
				s.logger.Warn("garment recognition failed", "error", err)
				return nil
			}
			predictions = preds
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	// Fill a style slot from the top prediction when the filename names it.
	if styles == (rules.Styles{}) && len(predictions) > 0 {
		lower := strings.ToLower(path)
		if strings.Contains(lower, "top") {
			styles.Top = predictions[0].Class
		}
		if strings.Contains(lower, "bottom") {
			styles.Bottom = predictions[0].Class
		}
		if strings.Contains(lower, "shoes") {
			styles.Shoes = predictions[0].Class
		}
	}

	rgbs := palette.ToRGBSlice()
	percentages := palette.Percentages()

	colors := make([]analyzedColor, len(rgbs))
	outfit := rules.Outfit{
		Colors:  make([]rules.ColourValue, len(rgbs)),
		Styles:  styles,
		Context: req.Context,
	}
	for i, rgb := range rgbs {
		classification := colour.Classify(rgb)
		colors[i] = analyzedColor{
			RGB:        rgb.Triple(),
			Percentage: math.Round(percentages[i]*100) / 100,
			Name:       classification.Name,
			Tone:       classification.Tone,
		}
		outfit.Colors[i] = rules.FromRGB(rgb)
	}

	combo := colour.ScoreCombo(rgbs)

	var ruleReport any
	if report, err := s.evaluator.Evaluate(outfit); err != nil {
		s.logger.Warn("rule evaluation failed", "error", err)
	} else {
		ruleReport = report
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"image_url": "/images/uploads/" + filepath.Base(path),
		"colors":    colors,
		"color_evaluation": gin.H{
			"score":       combo.Score,
			"suggestions": combo.Suggestions,
		},
		"style_predictions": predictions,
		"rule_evaluation":   ruleReport,
		"timestamp":         time.Now().Format(time.RFC3339),
	})
}

// handleRecommend returns the static guide for a wear context. The
// requested context is echoed even when it fell back to the default.
func (s *Server) handleRecommend(c *gin.Context) {
	contextType := c.DefaultQuery("context", recommend.DefaultContext)
	guide := recommend.Lookup(contextType)

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"context":           contextType,
		"recommendations":   guide.Tips,
		"color_suggestions": guide.Colors,
		"style_suggestions": guide.Styles,
	})
}

// handleWardrobe lists the stored wardrobe images, newest first.
func (s *Server) handleWardrobe(c *gin.Context) {
	images := make([]wardrobeImage, 0)

	if _, err := os.Stat(s.cfg.Wardrobe.Dir); err == nil {
		files, err := garbimage.ScanDirectory(s.cfg.Wardrobe.Dir)
		if err != nil {
			s.logger.Error("failed to list wardrobe", "error", err)
			errorResponse(c, http.StatusInternalServerError, "failed to list wardrobe")
			return
		}

		for _, f := range files {
			name := filepath.Base(f.Path)
			images = append(images, wardrobeImage{
				Filename:   name,
				URL:        "/images/uploads/" + name,
				UploadedAt: f.ModTime.Format(time.RFC3339),
				Size:       f.Size,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"images":  images,
		"count":   len(images),
	})
}

// handleWardrobeExport streams the wardrobe as a tar.gz download.
func (s *Server) handleWardrobeExport(c *gin.Context) {
	var buf bytes.Buffer
	count, err := archive.CreateTarGz(&buf, s.cfg.Wardrobe.Dir)
	if err != nil {
		s.logger.Error("wardrobe export failed", "error", err)
		errorResponse(c, http.StatusInternalServerError, "failed to export wardrobe")
		return
	}

	s.logger.Info("wardrobe exported", "files", count)

	filename := fmt.Sprintf("wardrobe_%s.tar.gz", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/gzip", buf.Bytes())
}

// handleImage serves a single uploaded image.
func (s *Server) handleImage(c *gin.Context) {
	name := security.SanitizeFilename(c.Param("filename"))
	if name == "" {
		errorResponse(c, http.StatusNotFound, "not found")
		return
	}

	path := filepath.Join(s.cfg.Wardrobe.Dir, name)
	if _, err := os.Stat(path); err != nil {
		errorResponse(c, http.StatusNotFound, "not found")
		return
	}

	c.File(path)
}

// handleHealthz reports liveness and the running version.
func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}
