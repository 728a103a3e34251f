package handler

import (
	"net/http"

	"github.com/KiptooAbel/snake-game-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "Snake Game API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/register", "description": "Créer un compte"},
				{"method": "POST", "path": "/auth/login", "description": "Connexion"},
				{"method": "POST", "path": "/auth/refresh", "description": "Renouveler la session via refresh token"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion"},
				{"method": "GET", "path": "/auth/profile", "description": "Profil de l'utilisateur connecté"},
			},
			"user": []map[string]string{
				{"method": "PUT", "path": "/user", "description": "Mettre à jour le profil"},
				{"method": "GET", "path": "/user/stats", "description": "Statistiques du joueur (moyenne, rang...)"},
			},
			"scores": []map[string]string{
				{"method": "GET", "path": "/scores", "description": "Historique paginé (param: page)"},
				{"method": "POST", "path": "/scores", "description": "Enregistrer une partie"},
				{"method": "GET", "path": "/scores/best", "description": "Meilleur score par difficulté"},
				{"method": "GET", "path": "/scores/{id}", "description": "Détail d'une partie"},
				{"method": "DELETE", "path": "/scores/{id}", "description": "Supprimer une de ses parties"},
			},
			"game-data": []map[string]string{
				{"method": "GET", "path": "/game-data", "description": "Sauvegarde de jeu (gems, coeurs, niveaux, high score)"},
				{"method": "PUT", "path": "/game-data/sync", "description": "Fusionner sauvegarde device/serveur"},
				{"method": "PUT", "path": "/game-data/field", "description": "Mettre à jour un champ précis"},
				{"method": "POST", "path": "/game-data/gems", "description": "Ajouter/retirer des gems"},
				{"method": "POST", "path": "/game-data/hearts", "description": "Ajouter/retirer des coeurs"},
				{"method": "POST", "path": "/game-data/unlock-level", "description": "Débloquer un niveau"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard/global", "description": "Classement de tous les temps"},
				{"method": "GET", "path": "/leaderboard/daily", "description": "Classement du jour"},
				{"method": "GET", "path": "/leaderboard/weekly", "description": "Classement de la semaine"},
				{"method": "GET", "path": "/leaderboard/monthly", "description": "Classement du mois"},
				{"method": "GET", "path": "/leaderboard/difficulty/{difficulty}", "description": "Classement par difficulté"},
				{"method": "GET", "path": "/high-scores", "description": "Meilleures parties (params: difficulty, limit)"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
	}

	utils.Success(w, routes)
}
