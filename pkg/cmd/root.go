package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"phishguard/pkg/classifier"
	"phishguard/pkg/collector"
	"phishguard/pkg/pipeline"
)

var (
	cfgFile string
	logger  *zap.SugaredLogger

	classify *pipeline.Pipeline
	hasModel bool
)

var rootCmd = &cobra.Command{
	Use:   "phishguard",
	Short: "Classify URLs as phishing or legitimate from lexical, content, and registration signals",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".phishguard")
			viper.SetConfigType("yaml")
		}

		viper.SetDefault("polarity", string(classifier.PolarityNegative))
		viper.SetDefault("fetch_timeout", 5*time.Second)
		viper.SetDefault("lookup_timeout", 5*time.Second)
		viper.SetDefault("dns_resolver", "8.8.8.8:53")
		viper.SetDefault("listen_addr", ":8080")
		_ = viper.ReadInConfig()

		l, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l.Sugar()

		polarity, err := classifier.ParsePolarity(viper.GetString("polarity"))
		if err != nil {
			return err
		}

		var model *classifier.Model
		if modelPath := viper.GetString("model_path"); modelPath != "" {
			model, err = classifier.LoadModel(modelPath)
			if err != nil {
				logger.Warnf("model %s not loaded, falling back to length heuristic: %v", modelPath, err)
				model = nil
			} else {
				logger.Infof("model loaded from %s (%d trees, polarity=%s)", modelPath, len(model.Trees), polarity)
			}
		} else {
			logger.Warn("no model_path configured, predictions use the length fallback")
		}
		hasModel = model != nil

		coll := collector.New(collector.Config{
			FetchTimeout:  viper.GetDuration("fetch_timeout"),
			LookupTimeout: viper.GetDuration("lookup_timeout"),
			DNSResolver:   viper.GetString("dns_resolver"),
			UserAgent:     "phishguard/1.0",
		})
		classify = pipeline.New(coll, classifier.New(model, polarity))

		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.phishguard.yaml)")
	rootCmd.PersistentFlags().String("model", "", "path to the JSON forest model file")
	rootCmd.PersistentFlags().String("polarity", "", "classifier label polarity (negative or positive)")
	_ = viper.BindPFlag("model_path", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("polarity", rootCmd.PersistentFlags().Lookup("polarity"))

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
