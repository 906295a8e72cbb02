package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/aymentigui/bus-pointage/internal/config"
	"github.com/aymentigui/bus-pointage/internal/domain"
)

func main() {
	/**********************************************
	 * Création du logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * Chargement de la configuration
	 **********************************************/
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("impossible de charger la configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Création du client mail
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("impossible de créer le client mail", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// Vérifier que le serveur SMTP est joignable avant de consommer
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("impossible de se connecter au serveur mail", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Connexion à RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("impossible de se connecter à RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("impossible d'ouvrir le canal", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"export_queue", // nom de la file
		true,           // durable
		false,          // pas de suppression automatique sans consommateur
		false,          // non exclusive
		false,          // attendre la confirmation de RabbitMQ
		nil,            // pas d'arguments supplémentaires
	)
	if err != nil {
		logger.Error("impossible de déclarer la file d'attente", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // identifiant attribué par RabbitMQ
		false, // pas d'acquittement automatique
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("impossible de consommer les messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("message reçu", slog.String("queue", q.Name))

				var mailMessage struct {
					Type string                `json:"type"`
					To   string                `json:"to"`
					Data domain.ExportMailData `json:"data"`
				}
				if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
					logger.Error("message illisible", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				if mailMessage.Type != "export" {
					logger.Error("type de message non pris en charge", slog.String("type", mailMessage.Type))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("impossible de définir l'expéditeur", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(mailMessage.To); err != nil {
					logger.Error("impossible de définir le destinataire", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				m.Subject("Pointage Bus - " + mailMessage.Data.Filename)
				m.SetBodyString(mail.TypeTextPlain, "Veuillez trouver ci-joint l'export des pointages demandé.")
				m.AttachReadSeeker(mailMessage.Data.Filename, bytes.NewReader([]byte(mailMessage.Data.CSV)))

				if err := client.DialAndSend(m); err != nil {
					logger.Error("échec de l'envoi du mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // remettre le message dans la file
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("en attente de messages... (CTRL+C pour quitter)")
	<-sigChan

	slog.Info("arrêt du worker mail...")
	cancel()
	wg.Wait()
	slog.Info("worker mail arrêté")
}
