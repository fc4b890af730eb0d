package mockserver

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/colonyops/adminctl/internal/core/bundle"
	"github.com/colonyops/adminctl/internal/core/settings"
)

const maxUploadMemory = 32 << 20

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Debug().Err(err).Msg("write response")
	}
}

func bundleID(r *http.Request) int64 {
	// the route pattern only admits digits
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func (s *Server) handleStatusMessages(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.statusMessages())
}

func (s *Server) handleBundles(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.bundles.Values())
}

func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	b, ok := s.state.bundles.Get(bundleID(r))
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleBundleAction(w http.ResponseWriter, r *http.Request) {
	id := bundleID(r)
	action := mux.Vars(r)["action"]

	if action == "uninstall" {
		if !s.state.bundles.Delete(id) {
			http.NotFound(w, r)
			return
		}
		s.state.modules.Delete(id)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	next := bundle.StateActive
	if action == "stop" {
		next = bundle.StateResolved
	}

	b, ok := s.state.bundles.Update(id, func(b bundle.Bundle) bundle.Bundle {
		b.State = next
		return b
	})
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("bundleFile")
	if err != nil {
		http.Error(w, "missing bundleFile", http.StatusBadRequest)
		return
	}
	_ = file.Close()

	state := bundle.StateInstalled
	if start, _ := strconv.ParseBool(r.FormValue("startBundle")); start {
		state = bundle.StateActive
	}

	name := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	b := s.state.addBundle(bundle.Bundle{
		Name:         name,
		SymbolicName: "uploaded." + strings.ToLower(name),
		Version:      "1.0.0",
		State:        state,
		Location:     "file:bundles/" + header.Filename,
	})
	s.writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handlePlatform(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.platformOptions())
}

func (s *Server) handlePlatformSave(w http.ResponseWriter, r *http.Request) {
	var opt settings.Option
	if err := json.NewDecoder(r.Body).Decode(&opt); err != nil || opt.Key == "" {
		http.Error(w, "invalid option", http.StatusBadRequest)
		return
	}
	s.state.setPlatform(opt)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlatformForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			s.state.setPlatform(settings.Option{Key: key, Value: values[0]})
		}
	}
	s.writeJSON(w, http.StatusOK, s.state.platformOptions())
}

func (s *Server) handleModuleSettings(w http.ResponseWriter, r *http.Request) {
	id := bundleID(r)
	if _, ok := s.state.bundles.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	files, _ := s.state.modules.Get(id)
	if files == nil {
		files = []settings.ModuleSettings{}
	}
	s.writeJSON(w, http.StatusOK, files)
}

func (s *Server) handleModuleForm(w http.ResponseWriter, r *http.Request) {
	id := bundleID(r)
	if _, ok := s.state.bundles.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	files, ok := s.state.modules.Update(id, func(files []settings.ModuleSettings) []settings.ModuleSettings {
		out := make([]settings.ModuleSettings, len(files))
		for i, f := range files {
			f.Settings = append([]settings.Option(nil), f.Settings...)
			for j, o := range f.Settings {
				if v, ok := r.MultipartForm.Value[o.Key]; ok && len(v) > 0 {
					f.Settings[j].Value = v[0]
				}
			}
			out[i] = f
		}
		return out
	})
	if !ok {
		files = []settings.ModuleSettings{}
	}
	s.writeJSON(w, http.StatusOK, files)
}
