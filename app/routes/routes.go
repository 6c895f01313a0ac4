package routes

import (
	"net/http"

	"github.com/bajrang214/looptalk-server/app/controllers"
	"github.com/bajrang214/looptalk-server/app/middleware"
	"github.com/bajrang214/looptalk-server/app/repositories"
	"github.com/bajrang214/looptalk-server/app/services"
	"github.com/bajrang214/looptalk-server/app/storage"
	"github.com/bajrang214/looptalk-server/config"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// SetupRoutes wires the API onto a router backed by the given Badger DB.
func SetupRoutes(db *badger.DB, cfg *config.Config) (*mux.Router, error) {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	files, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	postRepo := repositories.NewBadgerPostRepository(db)
	userRepo := repositories.NewBadgerUserRepository(db)
	postService := services.NewPostService(postRepo, userRepo)
	userService := services.NewUserService(userRepo, []byte(cfg.JWTSecret))

	authController := controllers.NewAuthController(userService)
	postController := controllers.NewPostController(postService, files)
	userController := controllers.NewUserController(userService, files)

	// Uploaded images
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Preflight requests need a matching route for the CORS middleware to
	// run; it answers them before this handler is reached.
	router.PathPrefix("/api/").Methods("OPTIONS").HandlerFunc(
		func(http.ResponseWriter, *http.Request) {})

	api := router.PathPrefix("/api").Subrouter()

	// Public endpoints
	api.HandleFunc("/register", authController.Register).Methods("POST")
	api.HandleFunc("/login", authController.Login).Methods("POST")
	api.HandleFunc("/posts", postController.Index).Methods("GET")

	// Authenticated endpoints
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.RequireAuth([]byte(cfg.JWTSecret)))
	authed.HandleFunc("/posts", postController.Create).Methods("POST")
	authed.HandleFunc("/posts/{id}/like", postController.ToggleLike).Methods("PUT")
	authed.HandleFunc("/posts/{id}/comment", postController.AddComment).Methods("PUT")
	authed.HandleFunc("/posts/{id}/comment/delete", postController.DeleteComment).Methods("PUT")
	authed.HandleFunc("/posts/{id}/edit", postController.Edit).Methods("PUT")
	authed.HandleFunc("/posts/{id}", postController.Delete).Methods("DELETE")
	authed.HandleFunc("/user/me", userController.Me).Methods("GET")
	authed.HandleFunc("/user/me", userController.UpdateMe).Methods("PUT")
	authed.HandleFunc("/user/me/posts", postController.MyPosts).Methods("GET")

	return router, nil
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
