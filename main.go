package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kos3l/manageable-kanban-api/handlers"
	"github.com/kos3l/manageable-kanban-api/logging"
	"github.com/kos3l/manageable-kanban-api/middleware"
	"github.com/kos3l/manageable-kanban-api/services"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.InitLogger()

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_FILE_MISSING, Description: No .env file found, relying on environment variables")
	}

	mongoURI := envOr("MONGO_URI", "mongodb://localhost:27017")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection failed: %v", err)
	}
	defer client.Disconnect(context.TODO())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Connected to MongoDB at %s", mongoURI)

	db := client.Database(envOr("MONGO_DB_NAME", "kanban_db"))
	usersCollection := db.Collection("users")
	teamsCollection := db.Collection("teams")
	projectsCollection := db.Collection("projects")
	tasksCollection := db.Collection("tasks")

	txn := services.NewTxnRunner(client)
	access := services.NewAccessService(teamsCollection)
	clock := services.NewLifecycleClock()
	softDelete := services.NewSoftDeleteLedger()
	membership := services.NewMembershipLedger(teamsCollection, usersCollection, tasksCollection)
	jwtService := services.NewJWTService()

	userService := services.NewUserService(usersCollection, teamsCollection, jwtService, txn)
	teamService := services.NewTeamService(teamsCollection, usersCollection, membership, access, softDelete, txn)
	projectService := services.NewProjectService(projectsCollection, teamsCollection, tasksCollection, access, clock, softDelete, txn)
	columnService := services.NewColumnService(projectsCollection, tasksCollection, usersCollection, access, txn)
	taskService := services.NewTaskService(tasksCollection, projectsCollection, usersCollection, access, clock, txn)

	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService)
	projectHandler := handlers.NewProjectHandler(projectService, columnService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := mux.NewRouter()

	// Public auth routes
	r.HandleFunc("/api/auth/register", userHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", userHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/refresh", userHandler.Refresh).Methods("POST")

	// Everything else requires a valid access token
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.JWTAuthMiddleware(jwtService))

	api.HandleFunc("/user/{id}", userHandler.GetUserByID).Methods("GET")
	api.HandleFunc("/user/{id}", userHandler.UpdateUser).Methods("PUT")

	api.HandleFunc("/team", teamHandler.GetAllTeams).Methods("GET")
	api.HandleFunc("/team", teamHandler.CreateTeam).Methods("POST")
	api.HandleFunc("/team/{id}", teamHandler.GetTeamByID).Methods("GET")
	api.HandleFunc("/team/{id}", teamHandler.UpdateTeam).Methods("PUT")
	api.HandleFunc("/team/{id}/members", teamHandler.UpdateMembers).Methods("PUT")
	api.HandleFunc("/team/{id}", teamHandler.DeleteTeam).Methods("DELETE")

	api.HandleFunc("/project/team/{teamId}", projectHandler.GetAllProjects).Methods("GET")
	api.HandleFunc("/project/team/{teamId}", projectHandler.CreateProject).Methods("POST")
	api.HandleFunc("/project/{id}", projectHandler.GetProjectByID).Methods("GET")
	api.HandleFunc("/project/{id}", projectHandler.UpdateProject).Methods("PUT")
	api.HandleFunc("/project/{id}/complete", projectHandler.CompleteProject).Methods("PUT")
	api.HandleFunc("/project/{id}", projectHandler.DeleteProject).Methods("DELETE")

	api.HandleFunc("/project/{id}/column", projectHandler.AddColumn).Methods("POST")
	api.HandleFunc("/project/{id}/column", projectHandler.RenameColumn).Methods("PUT")
	api.HandleFunc("/project/{id}/column/order", projectHandler.ReorderColumn).Methods("PUT")
	api.HandleFunc("/project/{id}/column/{columnId}", projectHandler.DeleteColumn).Methods("DELETE")

	api.HandleFunc("/task/project/{projectId}", taskHandler.GetTasksByProject).Methods("GET")
	api.HandleFunc("/task/project/{projectId}", taskHandler.CreateTask).Methods("POST")
	api.HandleFunc("/task/project/{projectId}/order", taskHandler.ReorderTasks).Methods("PUT")
	api.HandleFunc("/task/project/{projectId}/column/{columnId}", taskHandler.GetTasksByColumn).Methods("GET")
	api.HandleFunc("/task/project/{projectId}/user/{userId}", taskHandler.GetTasksForUser).Methods("GET")
	api.HandleFunc("/task/{id}", taskHandler.GetOneTask).Methods("GET")
	api.HandleFunc("/task/{id}", taskHandler.UpdateTask).Methods("PUT")
	api.HandleFunc("/task/{id}", taskHandler.DeleteTask).Methods("DELETE")
	api.HandleFunc("/task/{id}/assign/{userId}", taskHandler.AssignUser).Methods("PUT")
	api.HandleFunc("/task/{id}/unassign/{userId}", taskHandler.UnassignUser).Methods("PUT")
	api.HandleFunc("/task/{id}/label", taskHandler.AddLabel).Methods("POST")
	api.HandleFunc("/task/{id}/label/{labelId}", taskHandler.RemoveLabel).Methods("DELETE")

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"auth-token"},
		AllowCredentials: true,
	}).Handler(r)

	port := envOr("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      corsHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logging.Logger.Infof("Event ID: SERVER_STARTED, Description: Server is running on port %s", port)
	logging.Logger.Fatal(srv.ListenAndServe())
}
